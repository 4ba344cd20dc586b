package acars

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlackBoxFiresOncePerLanding(t *testing.T) {
	b := NewBlackBox()

	// Short final: inside the arming window, descending.
	b.Observe(TelemetrySnapshot{RadioAltitude: 40, VerticalSpeed: -300, GForce: 1.1})
	assert.True(t, b.Armed())
	b.Observe(TelemetrySnapshot{RadioAltitude: 20, VerticalSpeed: -250, GForce: 1.2})
	b.Observe(TelemetrySnapshot{RadioAltitude: 5, VerticalSpeed: -180, GForce: 1.1})

	td := b.Observe(TelemetrySnapshot{RadioAltitude: 0.5, OnGround: true, GroundSpeed: 120})
	if assert.NotNil(t, td) {
		// The worst vertical speed seen while armed is the landing rate.
		assert.Equal(t, -300.0, td.Fpm)
		assert.Equal(t, 1.2, td.GForce)
	}

	// Rollout keeps producing ground frames; the box stays quiet.
	for i := 0; i < 10; i++ {
		assert.Nil(t, b.Observe(TelemetrySnapshot{RadioAltitude: 0, OnGround: true, GroundSpeed: 80}))
	}
}

func TestBlackBoxRearmsAfterGoAround(t *testing.T) {
	b := NewBlackBox()

	b.Observe(TelemetrySnapshot{RadioAltitude: 30, VerticalSpeed: -400})
	td := b.Observe(TelemetrySnapshot{RadioAltitude: 0.5, OnGround: true, GroundSpeed: 110})
	assert.NotNil(t, td)

	// Touch-and-go: climb away past the reset ceiling.
	b.Observe(TelemetrySnapshot{RadioAltitude: 200, VerticalSpeed: 1500})
	assert.False(t, b.Armed())
	assert.False(t, b.Fired())

	// Second approach fires again with its own numbers.
	b.Observe(TelemetrySnapshot{RadioAltitude: 25, VerticalSpeed: -150})
	td = b.Observe(TelemetrySnapshot{RadioAltitude: 0.5, OnGround: true, GroundSpeed: 100})
	if assert.NotNil(t, td) {
		assert.Equal(t, -150.0, td.Fpm)
	}
}

func TestBlackBoxIgnoresSlowGroundContact(t *testing.T) {
	b := NewBlackBox()
	b.Observe(TelemetrySnapshot{RadioAltitude: 10, VerticalSpeed: -100})

	// Below the ground speed floor the contact does not count.
	assert.Nil(t, b.Observe(TelemetrySnapshot{RadioAltitude: 0.5, OnGround: true, GroundSpeed: 20}))
	assert.False(t, b.Fired())
}

func TestBlackBoxDoesNotArmOnGround(t *testing.T) {
	b := NewBlackBox()
	b.Observe(TelemetrySnapshot{RadioAltitude: 10, OnGround: true, VerticalSpeed: -50})
	assert.False(t, b.Armed())
}

func TestClientLandingGradeBands(t *testing.T) {
	assert.Equal(t, "Greased", LandingGrade(-160))
	assert.Equal(t, "Great", LandingGrade(-161))
	assert.Equal(t, "Great", LandingGrade(-240))
	assert.Equal(t, "Average", LandingGrade(-400))
	assert.Equal(t, "Hard", LandingGrade(-600))
	assert.Equal(t, "Structural", LandingGrade(-601))
}

func TestLandingScoreAnchors(t *testing.T) {
	assert.Equal(t, 100, LandingScore(-160))
	assert.Equal(t, 34, LandingScore(-318))
	assert.Equal(t, 0, LandingScore(-398))

	// Clamped on both sides.
	assert.Equal(t, 0, LandingScore(-900))
	for _, fpm := range []float64{-100, -200, -50, 0} {
		s := LandingScore(fpm)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
	}
}
