package acars

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMessageKnownTypes(t *testing.T) {
	msg, ok := DecodeMessage([]byte(`{"type":"telemetry","altitude":12000,"phase":"CRUISE"}`))
	assert.True(t, ok)
	tele, ok := msg.(TelemetrySnapshot)
	assert.True(t, ok)
	assert.Equal(t, 12000.0, tele.Altitude)
	assert.Equal(t, "CRUISE", tele.Phase)

	msg, ok = DecodeMessage([]byte(`{"type":"auth","isLoggedIn":true,"pilotId":"LV001"}`))
	assert.True(t, ok)
	auth, ok := msg.(AuthState)
	assert.True(t, ok)
	assert.Equal(t, "LV001", auth.PilotId)

	msg, ok = DecodeMessage([]byte(`{"type":"bid","callsign":"LVA101","departureIcao":"OJAI"}`))
	assert.True(t, ok)
	bid, ok := msg.(BidData)
	assert.True(t, ok)
	assert.Equal(t, "LVA101", bid.Callsign)
}

func TestDecodeMessageFailsClosed(t *testing.T) {
	for _, raw := range []string{
		`{this is not json`,
		`{"type":"quantum-telemetry"}`,
		`{"altitude":100}`,
		`{"type":""}`,
		`{"type":"telemetry","altitude":"not a number"}`,
		``,
	} {
		msg, ok := DecodeMessage([]byte(raw))
		assert.False(t, ok, raw)
		assert.Nil(t, msg, raw)
	}
}

func TestRouterDeliversInOrder(t *testing.T) {
	var got []float64
	done := make(chan struct{})

	count := 50
	r := NewRouter(func(m Message) {
		if tele, ok := m.(TelemetrySnapshot); ok {
			got = append(got, tele.Altitude)
			if len(got) == count {
				close(done)
			}
		}
	})

	for i := 0; i < count; i++ {
		r.Dispatch([]byte(fmt.Sprintf(`{"type":"telemetry","altitude":%d}`, i)))
	}
	<-done
	r.Close()

	for i, alt := range got {
		assert.Equal(t, float64(i), alt)
	}
}

func TestRouterDropsGarbageSilently(t *testing.T) {
	var delivered int
	r := NewRouter(func(Message) {
		delivered++
	})

	r.Dispatch([]byte(`not json at all`))
	r.Dispatch([]byte(`{"type":"unknown"}`))
	r.Dispatch([]byte(`{"type":"weather","qnh":1013.2}`))
	r.Close()

	assert.Equal(t, 1, delivered)
}
