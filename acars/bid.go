package acars

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// startCooldown absorbs duplicate start requests from double-clicks and
	// the auto-start race right after a manual start.
	startCooldown = 10 * time.Second

	// bidWindow is how long a reserved flight plan stays live.
	bidWindow = 24 * time.Hour

	autoStartAltitudeFt  = 50.0
	autoStartGroundSpeed = 30.0
)

var (
	ErrFlightActive  = errors.New("a flight is already in progress")
	ErrNoBid         = errors.New("no bid loaded")
	ErrBidExpired    = errors.New("bid has expired")
	ErrStartCooldown = errors.New("start requested too soon after the last one")
)

// StartTrigger names who asked for the flight to begin.
type StartTrigger string

const (
	TriggerManual     StartTrigger = "manual"
	TriggerAutoMotion StartTrigger = "auto-motion"
	TriggerForced     StartTrigger = "forced"
)

// BidLifecycle owns the reserved flight plan and the transition into an
// active flight. All latches are per-session state so two concurrent
// sessions never share a cooldown or an auto-start flag.
//
// Invariant: at most one of {bid, active flight} at a time. Loading a bid
// while flying is refused, and starting the flight consumes the bid.
type BidLifecycle struct {
	bid            *BidData
	started        *BidData
	flightActive   bool
	pilotId        string
	autoStartFired bool
	lastStart      time.Time

	bridge HostBridge
	log    *logrus.Entry
}

func NewBidLifecycle(pilotId string, bridge HostBridge) *BidLifecycle {
	if bridge == nil {
		bridge = NoopBridge{}
	}
	return &BidLifecycle{
		pilotId: pilotId,
		bridge:  bridge,
		log:     logrus.WithField("component", "bid"),
	}
}

// Load installs a new bid. An empty callsign clears the current one.
func (b *BidLifecycle) Load(bid BidData) error {
	if bid.Callsign == "" {
		b.clearBid()
		return nil
	}
	if b.flightActive {
		return ErrFlightActive
	}
	copied := bid
	b.bid = &copied
	b.autoStartFired = false
	b.log.WithFields(logrus.Fields{
		"callsign": bid.Callsign,
		"route":    bid.DepartureIcao + "-" + bid.ArrivalIcao,
	}).Info("bid loaded")
	return nil
}

// Bid returns the current bid, or nil.
func (b *BidLifecycle) Bid() *BidData {
	return b.bid
}

// StartedBid returns the bid behind the active flight, or nil. It survives
// until FlightEnded so the completed-flight report can still read it.
func (b *BidLifecycle) StartedBid() *BidData {
	return b.started
}

// FlightActive reports whether a flight is in progress.
func (b *BidLifecycle) FlightActive() bool {
	return b.flightActive
}

// Start transitions the loaded bid into an active flight. The forced
// trigger bypasses the cooldown but never the no-bid and already-active
// checks.
func (b *BidLifecycle) Start(trigger StartTrigger, now time.Time) error {
	if b.flightActive {
		return ErrFlightActive
	}
	if b.bid == nil {
		return ErrNoBid
	}
	if now.After(b.bid.ExpiresAt) {
		b.clearBid()
		return ErrBidExpired
	}
	if trigger != TriggerForced && !b.lastStart.IsZero() && now.Sub(b.lastStart) < startCooldown {
		return ErrStartCooldown
	}

	params := StartFlightParams{
		PilotId:              b.pilotId,
		FlightNumber:         b.bid.FlightNumber,
		Callsign:             b.bid.Callsign,
		DepartureIcao:        b.bid.DepartureIcao,
		ArrivalIcao:          b.bid.ArrivalIcao,
		Route:                b.bid.Route,
		AircraftType:         b.bid.AircraftType,
		AircraftRegistration: b.bid.AircraftRegistration,
		Pax:                  b.bid.Pax,
		Cargo:                b.bid.Cargo,
	}
	if err := b.bridge.StartFlight(params); err != nil {
		return err
	}

	b.lastStart = now
	b.flightActive = true
	// The consumed bid stays around for the flight report.
	b.started = b.bid
	b.bid = nil
	b.log.WithFields(logrus.Fields{
		"callsign": params.Callsign,
		"trigger":  string(trigger),
	}).Info("flight started")
	return nil
}

// ObserveMotion fires the auto-start once per bid when the aircraft is
// clearly moving: above 50 ft or faster than 30 kt ground speed. A failed
// auto-start still latches, so a cooldown rejection does not retrigger on
// every telemetry frame.
func (b *BidLifecycle) ObserveMotion(t TelemetrySnapshot, now time.Time) {
	if b.bid == nil || b.flightActive || b.autoStartFired {
		return
	}
	if t.Altitude <= autoStartAltitudeFt && t.GroundSpeed <= autoStartGroundSpeed {
		return
	}
	b.autoStartFired = true
	if err := b.Start(TriggerAutoMotion, now); err != nil {
		b.log.WithError(err).Warn("auto-start declined")
	}
}

// FlightEnded records that the active flight finished. The auto-start
// latch only rearms once both the flight and the bid are gone.
func (b *BidLifecycle) FlightEnded() {
	b.flightActive = false
	b.started = nil
	b.maybeRearm()
}

// Cancel drops the current bid via the host and locally.
func (b *BidLifecycle) Cancel() error {
	if b.bid == nil {
		return ErrNoBid
	}
	if err := b.bridge.CancelBid(); err != nil {
		return err
	}
	b.clearBid()
	return nil
}

// ExpireIfLapsed clears the bid once its window has passed. Returns true
// when an expiry happened on this call.
func (b *BidLifecycle) ExpireIfLapsed(now time.Time) bool {
	if b.bid == nil || !now.After(b.bid.ExpiresAt) {
		return false
	}
	b.log.WithField("callsign", b.bid.Callsign).Info("bid expired")
	b.clearBid()
	return true
}

// WindowRemaining reports how much of the bid window is left as a
// fraction in [0, 1]. Zero when no bid is loaded.
func (b *BidLifecycle) WindowRemaining(now time.Time) float64 {
	if b.bid == nil {
		return 0
	}
	left := b.bid.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	frac := float64(left) / float64(bidWindow)
	if frac > 1 {
		frac = 1
	}
	return frac
}

func (b *BidLifecycle) clearBid() {
	b.bid = nil
	b.maybeRearm()
}

func (b *BidLifecycle) maybeRearm() {
	if !b.flightActive && b.bid == nil {
		b.autoStartFired = false
	}
}
