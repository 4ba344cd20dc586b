package acars

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionCorrectedAltitude(t *testing.T) {
	s := NewSession(nil)

	s.Handle(TelemetrySnapshot{Altitude: 10000})
	// No weather yet: raw altitude passes through.
	assert.Equal(t, 10000.0, s.CorrectedAltitude())

	s.Handle(WeatherReport{Qnh: 1023.25})
	assert.InDelta(t, 10000+10*27.3, s.CorrectedAltitude(), 0.0001)

	s.Handle(WeatherReport{Qnh: 1003.25})
	assert.InDelta(t, 10000-10*27.3, s.CorrectedAltitude(), 0.0001)
}

func TestSessionActivityLogDedupAndCap(t *testing.T) {
	s := NewSession(nil)

	s.Handle(ActivityEntry{Message: "Pushback started", Timestamp: "10:00"})
	s.Handle(ActivityEntry{Message: "Pushback started", Timestamp: "10:00"})
	assert.Len(t, s.Snapshot().Activity, 1)

	for i := 0; i < logCap+20; i++ {
		s.Handle(ActivityEntry{Message: fmt.Sprintf("event %d", i)})
	}
	snap := s.Snapshot()
	assert.Len(t, snap.Activity, logCap)
	// Newest first.
	assert.Equal(t, fmt.Sprintf("event %d", logCap+19), snap.Activity[0].Message)
}

func TestSessionFlightCompletionHook(t *testing.T) {
	s := NewSession(nil)

	var completions []Snapshot
	s.OnFlightComplete = func(snap Snapshot) {
		completions = append(completions, snap)
	}

	s.Handle(FlightState{IsActive: true, Callsign: "LVA101", LandingRate: -210})
	assert.Empty(t, completions)

	// Touchdown happens before the host flips the flight inactive.
	s.Handle(TelemetrySnapshot{RadioAltitude: 20, VerticalSpeed: -220})
	s.Handle(TelemetrySnapshot{RadioAltitude: 0.5, OnGround: true, GroundSpeed: 110})

	s.Handle(FlightState{IsActive: false, Callsign: "LVA101", LandingRate: -210})
	if assert.Len(t, completions, 1) {
		assert.Equal(t, "LVA101", completions[0].Flight.Callsign)
		if assert.NotNil(t, completions[0].Touchdown) {
			assert.Equal(t, -220.0, completions[0].Touchdown.Fpm)
		}
	}

	// Repeated inactive frames do not re-fire the hook.
	s.Handle(FlightState{IsActive: false, Callsign: "LVA101"})
	assert.Len(t, completions, 1)
}

func TestSessionCompletionSnapshotCarriesStartedBid(t *testing.T) {
	s := NewSession(nil)

	var completions []Snapshot
	s.OnFlightComplete = func(snap Snapshot) {
		completions = append(completions, snap)
	}

	s.Handle(BidData{
		Callsign:             "LVA105",
		AircraftRegistration: "JY-SKA",
		Pax:                  120,
		ExpiresAt:            time.Now().Add(time.Hour),
	})
	assert.NoError(t, s.StartFlight())

	s.Handle(FlightState{IsActive: true, Callsign: "LVA105"})
	s.Handle(FlightState{IsActive: false, Callsign: "LVA105", LandingRate: -210})

	// The consumed bid still reaches the report.
	if assert.Len(t, completions, 1) {
		if assert.NotNil(t, completions[0].Bid) {
			assert.Equal(t, "JY-SKA", completions[0].Bid.AircraftRegistration)
			assert.Equal(t, 120, completions[0].Bid.Pax)
		}
	}

	// Afterwards it is gone for good.
	assert.Nil(t, s.Snapshot().Bid)
}

func TestSessionCancelFlightResetsState(t *testing.T) {
	s := NewSession(nil)

	s.Handle(FlightState{IsActive: true, Callsign: "LVA102"})
	s.Handle(TelemetrySnapshot{RadioAltitude: 20, VerticalSpeed: -300})

	assert.NoError(t, s.CancelFlight())
	snap := s.Snapshot()
	assert.False(t, snap.Flight.IsActive)
	assert.Nil(t, snap.Touchdown)
}

func TestSessionIgnoresUnchangedTelemetry(t *testing.T) {
	s := NewSession(nil)

	s.Handle(TelemetrySnapshot{Altitude: 5000, GForce: 1.0})
	s.Handle(TelemetrySnapshot{Altitude: 5002, GForce: 1.0})
	assert.Equal(t, 5000.0, s.Snapshot().Telemetry.Altitude)

	s.Handle(TelemetrySnapshot{Altitude: 5010, GForce: 1.0})
	assert.Equal(t, 5010.0, s.Snapshot().Telemetry.Altitude)
}
