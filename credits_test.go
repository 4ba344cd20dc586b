package skyops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditLandingBands(t *testing.T) {
	cfg := testConfig()

	cases := []struct {
		rate     float64
		expected int
	}{
		{-150, 50},
		{-151, 25},
		{-350, 25},
		{-399, 0},
		{-400, -50},
		{-600, -50},
		{-601, -100},
	}
	for _, c := range cases {
		b := CalculateFlightCredits(cfg, CreditInput{LandingRate: c.rate})
		assert.Equal(t, c.expected, b.Landing, "rate %v", c.rate)
	}
}

func TestCreditFuelEfficiency(t *testing.T) {
	cfg := testConfig()

	b := CalculateFlightCredits(cfg, CreditInput{FuelUsed: 10400, PlannedFuel: 10000})
	assert.Equal(t, 30, b.FuelEfficiency)

	b = CalculateFlightCredits(cfg, CreditInput{FuelUsed: 10600, PlannedFuel: 10000})
	assert.Equal(t, 0, b.FuelEfficiency)

	// No planned fuel means no judgement either way.
	b = CalculateFlightCredits(cfg, CreditInput{FuelUsed: 10400})
	assert.Equal(t, 0, b.FuelEfficiency)
}

func TestCreditLongHaul(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, 0, CalculateFlightCredits(cfg, CreditInput{FlightMinutes: 239}).LongHaul)
	assert.Equal(t, 100, CalculateFlightCredits(cfg, CreditInput{FlightMinutes: 240}).LongHaul)
	assert.Equal(t, 250, CalculateFlightCredits(cfg, CreditInput{FlightMinutes: 480}).LongHaul)
}

func TestCreditHubToHub(t *testing.T) {
	cfg := testConfig()

	b := CalculateFlightCredits(cfg, CreditInput{DepartureIcao: "OJAI", ArrivalIcao: "OMDB"})
	assert.Equal(t, 50, b.HubToHub)

	b = CalculateFlightCredits(cfg, CreditInput{DepartureIcao: "OJAI", ArrivalIcao: "LLBG"})
	assert.Equal(t, 0, b.HubToHub)

	// Same hub twice is not a hub-to-hub flight.
	b = CalculateFlightCredits(cfg, CreditInput{DepartureIcao: "OJAI", ArrivalIcao: "OJAI"})
	assert.Equal(t, 0, b.HubToHub)
}

func TestCreditMultipliersStack(t *testing.T) {
	cfg := testConfig()

	b := CalculateFlightCredits(cfg, CreditInput{
		LandingRate:    -120,
		IsFirstOfDay:   true,
		HasFlownBefore: true,
		IsEventFlight:  true,
	})
	// (100 base + 50 greaser) * 1.2 * 2.0
	assert.Equal(t, 360, b.Total)
	assert.InDelta(t, 2.4, b.Multiplier, 0.0001)
}

func TestCreditDeductionPenalties(t *testing.T) {
	cfg := testConfig()

	b := CalculateFlightCredits(cfg, CreditInput{
		LandingRate: -120,
		Deductions: []Deduction{
			{Reason: "Taxi speed exceeded 25 knots"},
			{Reason: "Landing lights off below 10000"},
			{Reason: "Overspeed below 10k (VMO)"},
			{Reason: "Taxi speed exceeded 25 knots"},
		},
	})

	assert.Equal(t, -20, b.TaxiSpeed)
	assert.Equal(t, -15, b.LightViolation)
	assert.Equal(t, -50, b.Overspeed)
}

func TestCreditTotalNeverNegative(t *testing.T) {
	cfg := testConfig()

	var deductions []Deduction
	for i := 0; i < 30; i++ {
		deductions = append(deductions, Deduction{Reason: "Overspeed"})
	}
	b := CalculateFlightCredits(cfg, CreditInput{LandingRate: -650, Deductions: deductions})
	assert.Equal(t, 0, b.Total)
}
