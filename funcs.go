package skyops

import (
	"math"
	"strings"
)

// HaversineNm returns the great-circle distance between two coordinates in
// nautical miles.
func HaversineNm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusNm = 3440.065
	toRad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Pow(math.Sin(dLon/2), 2)

	return 2 * earthRadiusNm * math.Asin(math.Sqrt(a))
}

// IsCheckride reports whether the flight number flags an evaluation flight
// with stricter pass/fail rules.
func IsCheckride(flightNumber string) bool {
	upper := strings.ToUpper(flightNumber)
	return strings.HasPrefix(upper, "CHK") || strings.HasPrefix(upper, "EXAM")
}

// RouteKey is the canonical "DEP-ARR" key used for route discovery.
func RouteKey(departureIcao, arrivalIcao string) string {
	return departureIcao + "-" + arrivalIcao
}
