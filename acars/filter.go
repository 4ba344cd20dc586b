package acars

import (
	"math"
)

// TelemetryChanged reports whether a candidate snapshot differs from the
// previous one enough to matter. Phase, ground and warning transitions are
// always significant; numeric fields compare against per-field thresholds
// so the update rate stays bounded without losing real transitions. Pure
// function, no hidden state.
func TelemetryChanged(prev, next TelemetrySnapshot) bool {
	return prev.Phase != next.Phase ||
		prev.OnGround != next.OnGround ||
		prev.StallWarning != next.StallWarning ||
		prev.OverspeedWarning != next.OverspeedWarning ||
		math.Abs(prev.Altitude-next.Altitude) > 5 ||
		math.Abs(prev.Ias-next.Ias) > 1 ||
		math.Abs(prev.GroundSpeed-next.GroundSpeed) > 1 ||
		math.Abs(prev.Heading-next.Heading) > 0.5 ||
		math.Abs(prev.VerticalSpeed-next.VerticalSpeed) > 10 ||
		math.Abs(prev.GForce-next.GForce) > 0.005 ||
		math.Abs(prev.RadioAltitude-next.RadioAltitude) > 1
}
