package skyops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func msTimestamp(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

func TestSignatureRoundTrip(t *testing.T) {
	now := time.Now()
	ts := msTimestamp(now)
	sig := ComputeSignature("secret", "LV001", -150.0, ts)

	err := VerifySignature("secret", "LV001", -150.0, &ts, &sig, now)
	assert.NoError(t, err)
}

func TestSignatureCanonicalRate(t *testing.T) {
	// -150.0 must sign identically whether the client held it as an int or
	// a float.
	assert.Equal(t,
		ComputeSignature("secret", "LV001", -150, 1700000000000),
		ComputeSignature("secret", "LV001", -150.0, 1700000000000),
	)
}

func TestTamperedSignatureRejected(t *testing.T) {
	now := time.Now()
	ts := msTimestamp(now)
	sig := ComputeSignature("secret", "LV001", -150.0, ts)

	// Same signature presented against a softer landing rate.
	err := VerifySignature("secret", "LV001", -90.0, &ts, &sig, now)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestMissingEnvelopeRejected(t *testing.T) {
	now := time.Now()
	ts := msTimestamp(now)
	sig := "whatever"

	assert.ErrorIs(t, VerifySignature("secret", "LV001", -150.0, nil, &sig, now), ErrUnsignedData)
	assert.ErrorIs(t, VerifySignature("secret", "LV001", -150.0, &ts, nil, now), ErrUnsignedData)
}

func TestStaleSubmissionRejected(t *testing.T) {
	now := time.Now()
	stale := msTimestamp(now.Add(-6 * time.Minute))
	sig := ComputeSignature("secret", "LV001", -150.0, stale)

	err := VerifySignature("secret", "LV001", -150.0, &stale, &sig, now)
	assert.ErrorIs(t, err, ErrStaleSubmission)
}

func TestEmptySignatureDegradedTrust(t *testing.T) {
	now := time.Now()
	ts := msTimestamp(now)
	empty := ""

	// Fresh but unsigned passes on the degraded-trust path.
	assert.NoError(t, VerifySignature("secret", "LV001", -150.0, &ts, &empty, now))

	// Freshness still applies to it.
	stale := msTimestamp(now.Add(-6 * time.Minute))
	assert.ErrorIs(t, VerifySignature("secret", "LV001", -150.0, &stale, &empty, now), ErrStaleSubmission)
}

func TestVerificationDisabledWithoutSecret(t *testing.T) {
	assert.NoError(t, VerifySignature("", "LV001", -150.0, nil, nil, time.Now()))
}
