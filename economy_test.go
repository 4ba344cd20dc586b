package skyops

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() Config {
	return Config{
		AppKey:                  "test-app-key",
		TicketPricePerNm:        0.1,
		CargoPricePerLbNm:       0.005,
		FuelPricePerLb:          0.75,
		BaseLandingFee:          150,
		PilotPayRate:            120.0,
		FuelTaxPercent:          5.0,
		PenaltyMultiplier:       10.0,
		GroundedHealthThreshold: 20.0,
		RepairHoursPerPercent:   2.0,
		AutoRejectLandingRate:   -700.0,
		CrBaseFlight:            100,
		CrGreaserBonus:          50,
		CrFirmBonus:             25,
		CrHardLandingPenalty:    -50,
		CrFuelEfficiencyBonus:   30,
		CrLongHaul4h:            100,
		CrLongHaul8h:            250,
		CrHubToHubBonus:         50,
		CrNewRouteBonus:         50,
		CrTaxiSpeedPenalty:      -10,
		CrLightViolationPenalty: -15,
		CrOverspeedPenalty:      -50,
		CrFirstFlightMultiplier: 1.2,
		CrEventMultiplier:       2.0,
	}
}

func TestCalculateEconomyKnownValues(t *testing.T) {
	cfg := testConfig()
	in := EconomyInput{
		Pax:           100,
		Cargo:         2000,
		DistanceNm:    500,
		FuelUsed:      8000,
		FlightMinutes: 120,
		Score:         90,
	}

	b := CalculateEconomy(cfg, in)

	// 100 pax * 500 nm * 0.1
	assert.Equal(t, 5000, b.RevenuePax)
	// 2000 lb * 500 nm * 0.005
	assert.Equal(t, 5000, b.RevenueCargo)
	assert.Equal(t, 10000, b.TotalRevenue)

	// 8000 lb * 0.75
	assert.Equal(t, 6000, b.CostFuel)
	// 150 + 500 * 0.1
	assert.Equal(t, 200, b.CostLanding)
	// 2 h * 120
	assert.Equal(t, 240, b.CostPilot)
	// 500 * 0.5
	assert.Equal(t, 250, b.CostMaintenance)
	assert.Equal(t, 6690, b.TotalExpenses)

	// 5% of 10000
	assert.Equal(t, 500, b.FuelTax)
	// (100-90) * 10
	assert.Equal(t, 100, b.Penalty)
	assert.Equal(t, 600, b.TotalDeductions)

	assert.Equal(t, 9400, b.NetPilotPay)
	assert.Equal(t, 3310, b.NetProfit)
}

func TestCalculateEconomyIsDeterministic(t *testing.T) {
	cfg := testConfig()
	in := EconomyInput{
		Pax:           73,
		Cargo:         1234,
		DistanceNm:    812.4,
		FuelUsed:      10345.6,
		FlightMinutes: 187,
		Score:         84,
		DotmBonus:     250,
		ButterScore:   9.1,
	}

	first := CalculateEconomy(cfg, in)
	second := CalculateEconomy(cfg, in)
	assert.Equal(t, first, second)
}

func TestNetPilotPayNeverNegative(t *testing.T) {
	cfg := testConfig()
	b := CalculateEconomy(cfg, EconomyInput{
		Pax:        1,
		DistanceNm: 1,
		Score:      0,
	})
	assert.Equal(t, 0, b.NetPilotPay)
}

func TestButterBonus(t *testing.T) {
	cfg := testConfig()

	b := CalculateEconomy(cfg, EconomyInput{ButterScore: 8.0})
	assert.Equal(t, 400, b.ButterBonus)

	b = CalculateEconomy(cfg, EconomyInput{ButterScore: 9.5})
	assert.Equal(t, 475, b.ButterBonus)

	b = CalculateEconomy(cfg, EconomyInput{ButterScore: 7.9})
	assert.Equal(t, 0, b.ButterBonus)
}

func TestSimulateLoadOnlyFillsMissing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	pax, cargo := SimulateLoad(80, 1500, rng)
	assert.Equal(t, 80, pax)
	assert.Equal(t, 1500, cargo)

	for i := 0; i < 100; i++ {
		pax, cargo = SimulateLoad(0, 0, rng)
		assert.GreaterOrEqual(t, pax, 50)
		assert.LessOrEqual(t, pax, 150)
		assert.GreaterOrEqual(t, cargo, 500)
		assert.LessOrEqual(t, cargo, 5000)
	}
}

func TestServerLandingGradeBands(t *testing.T) {
	assert.Equal(t, "Butter", LandingGrade(-60))
	assert.Equal(t, "Smooth", LandingGrade(-61))
	assert.Equal(t, "Smooth", LandingGrade(-150))
	assert.Equal(t, "Acceptable", LandingGrade(-300))
	assert.Equal(t, "Firm", LandingGrade(-500))
	assert.Equal(t, "Hard", LandingGrade(-501))
}

func TestPassengerRatingClamps(t *testing.T) {
	assert.Equal(t, 1, PassengerRating(0))
	assert.Equal(t, 1, PassengerRating(15))
	assert.Equal(t, 3, PassengerRating(41))
	assert.Equal(t, 5, PassengerRating(100))
	assert.Equal(t, 5, PassengerRating(500))
}

func TestDotmApplies(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	dotm := DestinationOfMonth{AirportIcao: "OMDB", Month: "March", Year: 2024, BonusPoints: 250}

	applies, lapsed := DotmApplies(dotm, "OJAI", "OMDB", now)
	assert.True(t, applies)
	assert.False(t, lapsed)

	applies, lapsed = DotmApplies(dotm, "OMDB", "OJAI", now)
	assert.True(t, applies)
	assert.False(t, lapsed)

	applies, lapsed = DotmApplies(dotm, "OJAI", "ORBI", now)
	assert.False(t, applies)
	assert.False(t, lapsed)

	applies, lapsed = DotmApplies(dotm, "OJAI", "OMDB", now.AddDate(0, 1, 0))
	assert.False(t, applies)
	assert.True(t, lapsed)
}
