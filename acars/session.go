package acars

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	logCap = 100

	// standardPressureHpa and feetPerHpa back the QNH correction applied
	// to the displayed altitude.
	standardPressureHpa = 1013.25
	feetPerHpa          = 27.3
)

// Session aggregates everything one connected client knows: auth, sim
// connection, current flight, the rolling activity and exceedance logs,
// weather, the loaded bid and the touchdown detector. It is the single
// consumer behind a Router, so the handler methods run serially; the
// mutex only guards the read-side snapshots.
type Session struct {
	mu sync.RWMutex

	Id string

	auth       AuthState
	connection ConnectionState
	flight     FlightState
	score      *ScoreResult
	weather    WeatherReport
	telemetry  TelemetrySnapshot
	touchdown  *Touchdown
	update     *UpdateStatus

	activity    []ActivityEntry
	exceedances []ExceedanceEntry

	bids     *BidLifecycle
	blackbox *BlackBox
	bridge   HostBridge

	// OnFlightComplete fires once per flight, when the host reports the
	// active flight has ended. Set before the router starts.
	OnFlightComplete func(Snapshot)

	now func() time.Time
	log *logrus.Entry
}

func NewSession(bridge HostBridge) *Session {
	if bridge == nil {
		bridge = NoopBridge{}
	}
	id := uuid.New().String()
	return &Session{
		Id:       id,
		bids:     NewBidLifecycle("", bridge),
		blackbox: NewBlackBox(),
		bridge:   bridge,
		now:      time.Now,
		log:      logrus.WithField("session", id),
	}
}

// Handle is the Router callback. Exactly one goroutine calls it.
func (s *Session) Handle(msg Message) {
	switch m := msg.(type) {
	case TelemetrySnapshot:
		s.handleTelemetry(m)
	case AuthState:
		s.mu.Lock()
		s.auth = m
		s.bids.pilotId = m.PilotId
		s.mu.Unlock()
	case ConnectionState:
		s.mu.Lock()
		s.connection = m
		s.mu.Unlock()
	case FlightState:
		s.handleFlight(m)
	case ScoreResult:
		s.mu.Lock()
		s.score = &m
		s.mu.Unlock()
	case ActivityEntry:
		s.mu.Lock()
		s.activity = appendActivity(s.activity, m)
		s.mu.Unlock()
	case ExceedanceEntry:
		s.mu.Lock()
		s.exceedances = appendExceedance(s.exceedances, m)
		s.mu.Unlock()
	case WeatherReport:
		s.mu.Lock()
		s.weather = m
		s.mu.Unlock()
	case TouchdownPoint:
		s.log.WithFields(logrus.Fields{
			"landingRate": m.LandingRate,
			"groundSpeed": m.GroundSpeed,
		}).Info("touchdown reported by host")
	case BidData:
		s.mu.Lock()
		if err := s.bids.Load(m); err != nil {
			s.log.WithError(err).Warn("bid rejected")
		}
		s.mu.Unlock()
	case UpdateStatus:
		s.mu.Lock()
		s.update = &m
		s.mu.Unlock()
	}
}

func (s *Session) handleTelemetry(t TelemetrySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !TelemetryChanged(s.telemetry, t) {
		return
	}
	s.telemetry = t

	if td := s.blackbox.Observe(t); td != nil {
		s.touchdown = td
		s.log.WithFields(logrus.Fields{
			"fpm":   td.Fpm,
			"g":     td.GForce,
			"grade": td.Grade,
		}).Info("touchdown detected")
	}

	now := s.now()
	s.bids.ExpireIfLapsed(now)
	s.bids.ObserveMotion(t, now)
}

func (s *Session) handleFlight(f FlightState) {
	s.mu.Lock()
	wasActive := s.flight.IsActive
	s.flight = f
	completed := wasActive && !f.IsActive
	s.mu.Unlock()

	if !completed {
		return
	}

	// Snapshot before the reset so the report still sees the touchdown.
	snap := s.Snapshot()

	s.mu.Lock()
	s.bids.FlightEnded()
	s.blackbox.Reset()
	s.mu.Unlock()

	if s.OnFlightComplete != nil {
		s.OnFlightComplete(snap)
	}
}

// CorrectedAltitude applies the current QNH to the raw altitude so the
// displayed value matches the altimeter setting rather than standard
// pressure.
func (s *Session) CorrectedAltitude() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.weather.Qnh == 0 {
		return s.telemetry.Altitude
	}
	return s.telemetry.Altitude + (s.weather.Qnh-standardPressureHpa)*feetPerHpa
}

// StartFlight begins the loaded bid on behalf of the pilot.
func (s *Session) StartFlight() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bids.Start(TriggerManual, s.now())
}

// CancelFlight aborts the active flight without filing a report.
func (s *Session) CancelFlight() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bridge.CancelFlight(); err != nil {
		return err
	}
	s.flight.IsActive = false
	s.bids.FlightEnded()
	s.blackbox.Reset()
	s.touchdown = nil
	return nil
}

// EndFlight asks the host to finalize the flight. The host answers with a
// FlightState transition, which releases the bid latch.
func (s *Session) EndFlight() error {
	return s.bridge.EndFlight()
}

// CancelBid drops the reserved flight plan.
func (s *Session) CancelBid() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bids.Cancel()
}

// Snapshot is a point-in-time read of the session for the UI or the
// report builder.
type Snapshot struct {
	Auth        AuthState
	Connection  ConnectionState
	Flight      FlightState
	Score       *ScoreResult
	Weather     WeatherReport
	Telemetry   TelemetrySnapshot
	Touchdown   *Touchdown
	Bid         *BidData
	Activity    []ActivityEntry
	Exceedances []ExceedanceEntry
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Auth:       s.auth,
		Connection: s.connection,
		Flight:     s.flight,
		Weather:    s.weather,
		Telemetry:  s.telemetry,
	}
	if s.score != nil {
		sc := *s.score
		snap.Score = &sc
	}
	if s.touchdown != nil {
		td := *s.touchdown
		snap.Touchdown = &td
	}
	if b := s.bids.Bid(); b != nil {
		bid := *b
		snap.Bid = &bid
	} else if b := s.bids.StartedBid(); b != nil {
		bid := *b
		snap.Bid = &bid
	}
	snap.Activity = append([]ActivityEntry(nil), s.activity...)
	snap.Exceedances = append([]ExceedanceEntry(nil), s.exceedances...)
	return snap
}

// appendActivity keeps the newest entry first, drops consecutive
// duplicates and caps the log.
func appendActivity(log []ActivityEntry, e ActivityEntry) []ActivityEntry {
	if len(log) > 0 && log[0].Message == e.Message {
		return log
	}
	log = append([]ActivityEntry{e}, log...)
	if len(log) > logCap {
		log = log[:logCap]
	}
	return log
}

func appendExceedance(log []ExceedanceEntry, e ExceedanceEntry) []ExceedanceEntry {
	if len(log) > 0 && log[0].Message == e.Message && log[0].Timestamp == e.Timestamp {
		return log
	}
	log = append([]ExceedanceEntry{e}, log...)
	if len(log) > logCap {
		log = log[:logCap]
	}
	return log
}
