package skyops

// PirepSubmission is the signed wire report of one completed flight.
type PirepSubmission struct {
	PilotId              string          `json:"pilotId"`
	FlightNumber         string          `json:"flightNumber"`
	Callsign             string          `json:"callsign"`
	DepartureIcao        string          `json:"departureIcao"`
	ArrivalIcao          string          `json:"arrivalIcao"`
	AlternateIcao        string          `json:"alternateIcao,omitempty"`
	Route                string          `json:"route,omitempty"`
	AircraftType         string          `json:"aircraftType"`
	AircraftRegistration string          `json:"aircraftRegistration,omitempty"`
	FlightTimeMinutes    float64         `json:"flightTimeMinutes"`
	LandingRate          float64         `json:"landingRate"`
	FuelUsed             float64         `json:"fuelUsed"`
	DistanceNm           float64         `json:"distanceNm"`
	Pax                  int             `json:"pax,omitempty"`
	Cargo                int             `json:"cargo,omitempty"`
	Score                int             `json:"score,omitempty"`
	Telemetry            []interface{}   `json:"telemetry,omitempty"`
	ComfortScore         int             `json:"comfortScore,omitempty"`
	Log                  *FlightLog      `json:"log,omitempty"`
	AirframeDamage       *AirframeDamage `json:"airframeDamage,omitempty"`
	Comments             string          `json:"comments,omitempty"`
	AcarsVersion         string          `json:"acarsVersion,omitempty"`
	Timestamp            *int64          `json:"timestamp,omitempty"`
	Signature            *string         `json:"signature,omitempty"`
}

type FlightLog struct {
	Deductions      []Deduction      `json:"deductions,omitempty"`
	LandingAnalysis *LandingAnalysis `json:"landingAnalysis,omitempty"`
	MaxGForce       float64          `json:"maxGForce,omitempty"`
}

type LandingAnalysis struct {
	ButterScore     float64 `json:"butterScore,omitempty"`
	GForceTouchdown float64 `json:"gForceTouchdown,omitempty"`
}

type AirframeDamage struct {
	TotalDamage float64 `json:"totalDamage"`
}

// RevenueBreakdown mirrors the economy result onto the wire.
type RevenueBreakdown struct {
	GrossRevenue    int `json:"grossRevenue"`
	FuelTax         int `json:"fuelTax"`
	PenaltyFines    int `json:"penaltyFines"`
	TotalDeductions int `json:"totalDeductions"`
	NetPilotPay     int `json:"netPilotPay"`
	DotmBonus       int `json:"dotmBonus"`
	ButterBonus     int `json:"butterBonus"`
	TotalEarned     int `json:"totalEarned"`
}

// SettlementResponse is the single consistent response for one submission,
// terminal for both acceptances and policy rejections.
type SettlementResponse struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message"`
	CreditsEarned      int               `json:"creditsEarned,omitempty"`
	BonusCredits       int               `json:"bonusCredits,omitempty"`
	CreditsBreakdown   []string          `json:"creditsBreakdown,omitempty"`
	NewRank            string            `json:"newRank,omitempty"`
	NewlyGrantedAwards []string          `json:"newlyGrantedAwards,omitempty"`
	AircraftHealth     float64           `json:"aircraftHealth"`
	RevenueBreakdown   *RevenueBreakdown `json:"revenueBreakdown,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
