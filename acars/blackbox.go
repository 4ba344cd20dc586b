package acars

import (
	"math"
)

// Black box arming and reset altitudes (radio altitude, feet).
const (
	armCeiling   = 50.0
	armFloor     = 1.0
	resetCeiling = 50.0

	// Ground contact below this speed is treated as a false contact or
	// bounce and does not fire the box.
	fireMinGroundSpeed = 30.0
)

// Touchdown is the single report a black box produces per landing.
type Touchdown struct {
	Fpm    float64
	GForce float64
	Grade  string
	Score  int
}

// BlackBox is the touchdown-detection state machine. One instance lives per
// flight: it arms inside the radio-altitude window, tracks the worst
// vertical speed and peak G before wheels touch, fires exactly once on
// confirmed ground contact, and disarms again when the aircraft climbs away
// (go-around or touch-and-go).
type BlackBox struct {
	armed        bool
	fired        bool
	touchdownFpm float64
	maxGForce    float64
}

func NewBlackBox() *BlackBox {
	return &BlackBox{maxGForce: 1.0}
}

// Observe feeds one telemetry snapshot through the state machine. The
// returned Touchdown is non-nil exactly once per landing, at the moment of
// confirmed ground contact.
func (b *BlackBox) Observe(t TelemetrySnapshot) *Touchdown {
	if t.RadioAltitude < armCeiling && t.RadioAltitude > armFloor && !t.OnGround {
		b.armed = true
		// The last vertical speed before wheels touch is the most accurate
		// landing rate, so keep the minimum seen while armed.
		if t.VerticalSpeed < b.touchdownFpm {
			b.touchdownFpm = t.VerticalSpeed
		}
		if t.GForce > b.maxGForce {
			b.maxGForce = t.GForce
		}
	}

	var report *Touchdown
	if b.armed && !b.fired && t.OnGround && t.RadioAltitude <= armFloor && t.GroundSpeed > fireMinGroundSpeed {
		b.fired = true
		report = &Touchdown{
			Fpm:    b.touchdownFpm,
			GForce: b.maxGForce,
			Grade:  LandingGrade(b.touchdownFpm),
			Score:  LandingScore(b.touchdownFpm),
		}
	}

	if !t.OnGround && t.RadioAltitude > resetCeiling {
		b.Reset()
	}

	return report
}

func (b *BlackBox) Reset() {
	b.armed = false
	b.fired = false
	b.touchdownFpm = 0
	b.maxGForce = 1.0
}

func (b *BlackBox) Armed() bool { return b.armed }
func (b *BlackBox) Fired() bool { return b.fired }

// LandingGrade buckets the landing rate for pilot-facing feedback. These
// bands are wider than the server's persisted grade table on purpose.
func LandingGrade(fpm float64) string {
	abs := math.Abs(fpm)
	switch {
	case abs <= 160:
		return "Greased"
	case abs <= 240:
		return "Great"
	case abs <= 400:
		return "Average"
	case abs <= 600:
		return "Hard"
	default:
		return "Structural"
	}
}

// LandingScore maps the landing rate onto 0-100. Centered on -160 fpm with
// a 66/158 penalty per fpm of deviation, which lands exactly on the
// anchors: -160 scores 100, -318 scores 34, -398 scores 0.
func LandingScore(fpm float64) int {
	deviation := math.Abs(math.Abs(fpm) - 160)
	score := int(math.Floor(100 - deviation*66.0/158.0))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
