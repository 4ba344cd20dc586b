package skyops

import (
	"fmt"
	"math"
	"strings"
)

// Hub airports eligible for the hub-to-hub bonus.
var hubIcaos = []string{"OJAI", "ORBI", "OSDI", "OERK", "OMDB", "OTHH"}

// CreditInput feeds the bonus credit calculator. The flags that need
// database context (new route, first flight of the day, event flight) are
// resolved by the orchestrator before calling in, so the calculation itself
// is pure.
type CreditInput struct {
	DepartureIcao  string
	ArrivalIcao    string
	LandingRate    float64
	FlightMinutes  float64
	FuelUsed       float64
	PlannedFuel    float64
	Deductions     []Deduction
	IsEventFlight  bool
	IsNewRoute     bool
	IsFirstOfDay   bool
	HasFlownBefore bool
}

// CreditBreakdown itemizes the bonus credits layered on top of the economy
// payout.
type CreditBreakdown struct {
	Base           int
	Landing        int
	FuelEfficiency int
	LongHaul       int
	HubToHub       int
	NewRoute       int
	TaxiSpeed      int
	LightViolation int
	Overspeed      int
	Multiplier     float64
	Total          int
	Details        []string
}

func isHub(icao string) bool {
	for _, h := range hubIcaos {
		if h == icao {
			return true
		}
	}
	return false
}

// CalculateFlightCredits reproduces the airline's bonus scheme: base award,
// landing bands, fuel efficiency, long haul, hub-to-hub, route discovery,
// daily and event multipliers, and professionalism penalties parsed from the
// ACARS deduction log.
func CalculateFlightCredits(cfg Config, in CreditInput) CreditBreakdown {
	b := CreditBreakdown{Multiplier: 1.0}

	b.Base = cfg.CrBaseFlight
	b.Details = append(b.Details, fmt.Sprintf("Base flight: +%d CR", b.Base))

	absRate := math.Abs(in.LandingRate)
	switch {
	case absRate <= 150:
		b.Landing = cfg.CrGreaserBonus
		b.Details = append(b.Details, fmt.Sprintf("Greaser landing (%.0f fpm): +%d CR", in.LandingRate, b.Landing))
	case absRate <= 350:
		b.Landing = cfg.CrFirmBonus
		b.Details = append(b.Details, fmt.Sprintf("Firm but fair (%.0f fpm): +%d CR", in.LandingRate, b.Landing))
	case absRate >= 400 && absRate <= 600:
		b.Landing = cfg.CrHardLandingPenalty
		b.Details = append(b.Details, fmt.Sprintf("Hard landing (%.0f fpm): %d CR", in.LandingRate, b.Landing))
	case absRate > 600:
		b.Landing = cfg.CrHardLandingPenalty * 2
		b.Details = append(b.Details, fmt.Sprintf("Very hard landing (%.0f fpm): %d CR", in.LandingRate, b.Landing))
	}

	if in.FuelUsed > 0 && in.PlannedFuel > 0 {
		diffPercent := math.Abs(in.FuelUsed-in.PlannedFuel) / in.PlannedFuel * 100
		if diffPercent <= 5 {
			b.FuelEfficiency = cfg.CrFuelEfficiencyBonus
			b.Details = append(b.Details, fmt.Sprintf("Fuel efficiency (within 5%%): +%d CR", b.FuelEfficiency))
		}
	}

	flightHours := in.FlightMinutes / 60
	switch {
	case flightHours >= 8:
		b.LongHaul = cfg.CrLongHaul8h
		b.Details = append(b.Details, fmt.Sprintf("Long haul 8h+: +%d CR", b.LongHaul))
	case flightHours >= 4:
		b.LongHaul = cfg.CrLongHaul4h
		b.Details = append(b.Details, fmt.Sprintf("Long haul 4h+: +%d CR", b.LongHaul))
	}

	if isHub(in.DepartureIcao) && isHub(in.ArrivalIcao) && in.DepartureIcao != in.ArrivalIcao {
		b.HubToHub = cfg.CrHubToHubBonus
		b.Details = append(b.Details, fmt.Sprintf("Hub-to-hub flight: +%d CR", b.HubToHub))
	}

	if in.IsNewRoute {
		b.NewRoute = cfg.CrNewRouteBonus
		b.Details = append(b.Details, fmt.Sprintf("New route discovery: +%d CR", b.NewRoute))
	}

	if in.IsFirstOfDay {
		b.Multiplier *= cfg.CrFirstFlightMultiplier
		if in.HasFlownBefore {
			b.Details = append(b.Details, fmt.Sprintf("First flight of the day: %.1fx multiplier", cfg.CrFirstFlightMultiplier))
		} else {
			b.Details = append(b.Details, fmt.Sprintf("First flight ever: %.1fx multiplier", cfg.CrFirstFlightMultiplier))
		}
	}

	if in.IsEventFlight {
		b.Multiplier *= cfg.CrEventMultiplier
		b.Details = append(b.Details, fmt.Sprintf("Event flight: %.1fx multiplier", cfg.CrEventMultiplier))
	}

	for _, d := range in.Deductions {
		reason := strings.ToLower(d.Reason)
		if strings.Contains(reason, "taxi") && strings.Contains(reason, "speed") {
			b.TaxiSpeed += cfg.CrTaxiSpeedPenalty
		}
		if strings.Contains(reason, "light") || strings.Contains(reason, "strobe") {
			b.LightViolation += cfg.CrLightViolationPenalty
		}
		if strings.Contains(reason, "overspeed") || strings.Contains(reason, "over speed") || strings.Contains(reason, "vmo") {
			b.Overspeed += cfg.CrOverspeedPenalty
		}
	}
	if b.TaxiSpeed != 0 {
		b.Details = append(b.Details, fmt.Sprintf("Taxi speed violations: %d CR", b.TaxiSpeed))
	}
	if b.LightViolation != 0 {
		b.Details = append(b.Details, fmt.Sprintf("Light discipline violations: %d CR", b.LightViolation))
	}
	if b.Overspeed != 0 {
		b.Details = append(b.Details, fmt.Sprintf("Overspeed violations: %d CR", b.Overspeed))
	}

	sum := b.Base + b.Landing + b.FuelEfficiency + b.LongHaul + b.HubToHub + b.NewRoute +
		b.TaxiSpeed + b.LightViolation + b.Overspeed
	b.Total = int(math.Round(float64(sum) * b.Multiplier))
	if b.Total < 0 {
		b.Total = 0
	}

	return b
}
