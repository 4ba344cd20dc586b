package skyops

import (
	"math"
	"math/rand"
	"time"
)

// EconomyInput is everything the calculator reads. Simulated pax/cargo are
// rolled before this struct is built (see SimulateLoad) so the calculator
// itself stays deterministic.
type EconomyInput struct {
	Pax           int
	Cargo         int
	DistanceNm    float64
	FuelUsed      float64
	FlightMinutes float64
	Score         int
	DotmBonus     int
	ButterScore   float64
}

// EconomyBreakdown is the full revenue/expense/tax/penalty picture for one
// settled flight. All amounts are whole credits; rounding happens here and
// nowhere else so repeated computation is byte-identical.
type EconomyBreakdown struct {
	RevenuePax      int
	RevenueCargo    int
	TotalRevenue    int
	CostFuel        int
	CostLanding     int
	CostPilot       int
	CostMaintenance int
	TotalExpenses   int
	FuelTax         int
	Penalty         int
	TotalDeductions int
	NetPilotPay     int
	NetProfit       int
	DotmBonus       int
	ButterBonus     int
}

// FlightCredits is the pilot's take-home for the flight.
func (b EconomyBreakdown) FlightCredits() int {
	return b.NetPilotPay + b.DotmBonus + b.ButterBonus
}

func round(v float64) int {
	return int(math.Round(v))
}

// CalculateEconomy is a pure function of the input and config: same inputs,
// identical breakdown.
func CalculateEconomy(cfg Config, in EconomyInput) EconomyBreakdown {
	b := EconomyBreakdown{}

	b.RevenuePax = round(float64(in.Pax) * in.DistanceNm * cfg.TicketPricePerNm)
	b.RevenueCargo = round(float64(in.Cargo) * in.DistanceNm * cfg.CargoPricePerLbNm)
	b.TotalRevenue = b.RevenuePax + b.RevenueCargo

	b.CostFuel = round(in.FuelUsed * cfg.FuelPricePerLb)
	b.CostLanding = cfg.BaseLandingFee + round(in.DistanceNm*0.1)
	b.CostPilot = round((in.FlightMinutes / 60) * cfg.PilotPayRate)
	b.CostMaintenance = round(in.DistanceNm * 0.5)
	b.TotalExpenses = b.CostFuel + b.CostLanding + b.CostPilot + b.CostMaintenance

	b.FuelTax = round(float64(b.TotalRevenue) * (cfg.FuelTaxPercent / 100))
	b.Penalty = round(float64(100-in.Score) * cfg.PenaltyMultiplier)
	b.TotalDeductions = b.FuelTax + b.Penalty

	b.NetPilotPay = b.TotalRevenue - b.TotalDeductions
	if b.NetPilotPay < 0 {
		b.NetPilotPay = 0
	}
	b.NetProfit = b.TotalRevenue - b.TotalExpenses

	b.DotmBonus = in.DotmBonus
	if in.ButterScore >= 8.0 {
		b.ButterBonus = round(in.ButterScore * 50)
	}

	return b
}

// SimulateLoad fills in pax/cargo when the client did not report them. This
// is the only randomness in the economy path and runs strictly before
// CalculateEconomy.
func SimulateLoad(pax int, cargo int, rng *rand.Rand) (int, int) {
	if pax == 0 {
		pax = rng.Intn(150-50+1) + 50
	}
	if cargo == 0 {
		cargo = rng.Intn(5000-500+1) + 500
	}
	return pax, cargo
}

// LandingGrade buckets the landing rate for the persisted flight record.
// These are the server-side bands; the ACARS client grades against its own,
// wider table (see the acars package) and the two intentionally differ.
func LandingGrade(rate float64) string {
	abs := math.Abs(rate)
	switch {
	case abs <= 60:
		return "Butter"
	case abs <= 150:
		return "Smooth"
	case abs <= 300:
		return "Acceptable"
	case abs <= 500:
		return "Firm"
	default:
		return "Hard"
	}
}

// PassengerRating maps the flight score onto the 1-5 star cabin rating.
func PassengerRating(score int) int {
	r := int(math.Ceil(float64(score) / 20))
	if r < 1 {
		r = 1
	}
	if r > 5 {
		r = 5
	}
	return r
}

var passengerReviews = map[string][]string{
	"excellent": {
		"Best flight of my life! The landing was like a kiss.",
		"Smooth operator! Didn't even feel the touchdown.",
		"Professional service and a perfect landing. A+",
		"Luxury in the air. 5 stars all the way.",
	},
	"good": {
		"A solid flight, fairly smooth arrival.",
		"Everything went well. The crew was very polite.",
		"On time and safe. Average landing.",
		"Good value for money. Would fly with us again.",
	},
	"firm": {
		"A bit of a bump on landing, but we got there safe.",
		"Decent flight, but the touchdown was a little firm.",
		"Average experience. Nothing special.",
		"Work on those landings! Otherwise a good flight.",
	},
	"bad": {
		"I think I need to see a chiropractor! Hard landing.",
		"Terrifying landing. Why was it so hard?",
		"Not a great experience. Very rough arrival.",
		"Please retrain the pilot. That was not smooth at all.",
	},
}

// PassengerReview picks a flavour line for the record based on landing rate
// and score bands.
func PassengerReview(rate float64, score int, rng *rand.Rand) string {
	var pool []string
	switch {
	case rate > -150 && score >= 90:
		pool = passengerReviews["excellent"]
	case rate > -300 && score >= 75:
		pool = passengerReviews["good"]
	case rate > -500:
		pool = passengerReviews["firm"]
	default:
		pool = passengerReviews["bad"]
	}
	return pool[rng.Intn(len(pool))]
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DotmApplies reports whether the destination-of-the-month bonus covers this
// leg right now, and whether the DOTM window has lapsed and should be
// deactivated.
func DotmApplies(d DestinationOfMonth, departureIcao string, arrivalIcao string, now time.Time) (applies bool, lapsed bool) {
	inWindow := d.Month == monthNames[int(now.Month())-1] && d.Year == now.Year()
	if !inWindow {
		return false, true
	}
	return departureIcao == d.AirportIcao || arrivalIcao == d.AirportIcao, false
}
