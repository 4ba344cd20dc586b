package acars

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingBridge counts host verb invocations.
type recordingBridge struct {
	NoopBridge
	starts     int
	bidCancels int
}

func (r *recordingBridge) StartFlight(StartFlightParams) error {
	r.starts++
	return nil
}

func (r *recordingBridge) CancelBid() error {
	r.bidCancels++
	return nil
}

func liveBid(now time.Time) BidData {
	return BidData{
		Callsign:      "LVA101",
		FlightNumber:  "101",
		DepartureIcao: "OJAI",
		ArrivalIcao:   "OMDB",
		CreatedAt:     now,
		ExpiresAt:     now.Add(24 * time.Hour),
	}
}

func TestStartCooldownAbsorbsDoubleClick(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bridge := &recordingBridge{}
	bl := NewBidLifecycle("LV001", bridge)

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.NoError(t, bl.Start(TriggerManual, now))
	assert.Equal(t, 1, bridge.starts)

	// The flight ends and a new bid arrives within the cooldown.
	bl.FlightEnded()
	assert.NoError(t, bl.Load(liveBid(now)))
	assert.ErrorIs(t, bl.Start(TriggerManual, now.Add(5*time.Second)), ErrStartCooldown)
	assert.Equal(t, 1, bridge.starts)

	assert.NoError(t, bl.Start(TriggerManual, now.Add(11*time.Second)))
	assert.Equal(t, 2, bridge.starts)
}

func TestForcedStartBypassesCooldown(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bridge := &recordingBridge{}
	bl := NewBidLifecycle("LV001", bridge)

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.NoError(t, bl.Start(TriggerManual, now))
	bl.FlightEnded()

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.NoError(t, bl.Start(TriggerForced, now.Add(time.Second)))
	assert.Equal(t, 2, bridge.starts)
}

func TestAutoStartFiresOncePerBid(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bridge := &recordingBridge{}
	bl := NewBidLifecycle("LV001", bridge)

	assert.NoError(t, bl.Load(liveBid(now)))

	// Stationary at the gate: nothing happens.
	bl.ObserveMotion(TelemetrySnapshot{Altitude: 10, GroundSpeed: 5}, now)
	assert.Equal(t, 0, bridge.starts)

	// Takeoff roll trips the auto-start.
	bl.ObserveMotion(TelemetrySnapshot{Altitude: 10, GroundSpeed: 45}, now)
	assert.Equal(t, 1, bridge.starts)
	assert.True(t, bl.FlightActive())

	// Further motion frames never start twice.
	bl.ObserveMotion(TelemetrySnapshot{Altitude: 500, GroundSpeed: 180}, now.Add(time.Minute))
	assert.Equal(t, 1, bridge.starts)
}

func TestAutoStartLatchRearmsOnlyWhenIdle(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bridge := &recordingBridge{}
	bl := NewBidLifecycle("LV001", bridge)

	assert.NoError(t, bl.Load(liveBid(now)))
	bl.ObserveMotion(TelemetrySnapshot{Altitude: 100}, now)
	assert.Equal(t, 1, bridge.starts)

	// Flight over, no bid: the latch rearms for the next booking.
	bl.FlightEnded()
	assert.NoError(t, bl.Load(liveBid(now.Add(time.Hour))))
	bl.ObserveMotion(TelemetrySnapshot{GroundSpeed: 40}, now.Add(time.Hour))
	assert.Equal(t, 2, bridge.starts)
}

func TestLoadRejectedWhileFlying(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bl := NewBidLifecycle("LV001", &recordingBridge{})

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.NoError(t, bl.Start(TriggerManual, now))

	assert.ErrorIs(t, bl.Load(liveBid(now)), ErrFlightActive)
	// Starting consumed the old bid: at most one of bid/flight exists.
	assert.Nil(t, bl.Bid())
}

func TestEmptyCallsignClearsBid(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bl := NewBidLifecycle("LV001", &recordingBridge{})

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.NotNil(t, bl.Bid())

	assert.NoError(t, bl.Load(BidData{}))
	assert.Nil(t, bl.Bid())
}

func TestExpiredBidCannotStart(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bl := NewBidLifecycle("LV001", &recordingBridge{})

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.ErrorIs(t, bl.Start(TriggerManual, now.Add(25*time.Hour)), ErrBidExpired)
	assert.Nil(t, bl.Bid())
}

func TestExpireIfLapsed(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bl := NewBidLifecycle("LV001", &recordingBridge{})

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.False(t, bl.ExpireIfLapsed(now.Add(23*time.Hour)))
	assert.True(t, bl.ExpireIfLapsed(now.Add(24*time.Hour+time.Second)))
	assert.Nil(t, bl.Bid())
}

func TestWindowRemaining(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bl := NewBidLifecycle("LV001", &recordingBridge{})

	assert.Equal(t, 0.0, bl.WindowRemaining(now))

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.InDelta(t, 1.0, bl.WindowRemaining(now), 0.0001)
	assert.InDelta(t, 0.5, bl.WindowRemaining(now.Add(12*time.Hour)), 0.0001)
	assert.Equal(t, 0.0, bl.WindowRemaining(now.Add(25*time.Hour)))
}

func TestStartedBidSurvivesUntilFlightEnds(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	b := NewBidLifecycle("p1", &recordingBridge{})

	assert.NoError(t, b.Load(liveBid(now)))
	assert.NoError(t, b.Start(TriggerManual, now))

	assert.Nil(t, b.Bid())
	if assert.NotNil(t, b.StartedBid()) {
		assert.Equal(t, "LVA101", b.StartedBid().Callsign)
	}

	b.FlightEnded()
	assert.Nil(t, b.StartedBid())
}

func TestCancelBidCallsHost(t *testing.T) {
	now := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	bridge := &recordingBridge{}
	bl := NewBidLifecycle("LV001", bridge)

	assert.ErrorIs(t, bl.Cancel(), ErrNoBid)

	assert.NoError(t, bl.Load(liveBid(now)))
	assert.NoError(t, bl.Cancel())
	assert.Equal(t, 1, bridge.bidCancels)
	assert.Nil(t, bl.Bid())
}
