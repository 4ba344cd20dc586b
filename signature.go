package skyops

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Submissions older than this are rejected outright (replay protection).
const replayWindow = 300 * time.Second

// ComputeSignature builds the HMAC-SHA256 hex digest over the canonical
// "pilotId:landingRate:timestamp" string. The landing rate renders with
// minimal decimal digits so -150.0 signs as "-150".
func ComputeSignature(secret string, pilotId string, landingRate float64, timestamp int64) string {
	data := pilotId + ":" + strconv.FormatFloat(landingRate, 'f', -1, 64) + ":" + strconv.FormatInt(timestamp, 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature applies the security checks from the submission envelope.
// A configured but empty signature is accepted as a degraded-trust
// submission (back-compat with older clients) and only checked for
// freshness. Returns nil when the secret is not configured at all.
func VerifySignature(secret string, pilotId string, landingRate float64, timestamp *int64, signature *string, now time.Time) error {
	if secret == "" {
		return nil
	}

	if timestamp == nil || signature == nil {
		logrus.WithField("pilot", pilotId).Warn("security violation: unsigned PIREP")
		return ErrUnsignedData
	}

	if *signature != "" {
		expected := ComputeSignature(secret, pilotId, landingRate, *timestamp)
		if !hmac.Equal([]byte(*signature), []byte(expected)) {
			logrus.WithField("pilot", pilotId).Error("security alert: signature mismatch")
			return ErrBadSignature
		}
	} else {
		logrus.WithField("pilot", pilotId).Warn("PIREP submitted without HMAC signature, allowing with timestamp check only")
	}

	if now.Sub(time.Unix(0, *timestamp*int64(time.Millisecond))) > replayWindow {
		logrus.WithField("pilot", pilotId).Warn("security warning: stale PIREP data")
		return ErrStaleSubmission
	}

	return nil
}
