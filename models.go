package skyops

import (
	"time"
)

type Pilot struct {
	Id           string
	PilotId      string
	Email        string
	FirstName    string
	LastName     string
	Rank         string
	Status       string
	Balance      int
	TotalCredits int
	TotalFlights int
	TotalHours   float64
	// Hours carried over from another airline, counted for rank only.
	TransferHours   float64
	CurrentLocation string
	RoutesFlown     []string
	LastFlightDate  time.Time
	LastActivity    time.Time
}

func (p Pilot) FullName() string {
	return p.FirstName + " " + p.LastName
}

type FleetAircraft struct {
	Id              string
	Registration    string
	AircraftType    string
	CurrentLocation string
	Condition       float64
	Status          AircraftStatus
	GroundedReason  string
	FlightCount     int
	TotalHours      float64
	DamageLog       []DamageEvent
	RepairUntil     time.Time
	DamagedAt       time.Time
	DamagedByPilot  string
	DamagedByFlight string
}

// DamageEvent is one entry of the capped rolling damage log on an aircraft.
type DamageEvent struct {
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	FlightId  string    `json:"flight_id"`
}

// FlightRecord is the immutable ledger row created once per submission
// attempt, whether accepted or rejected.
type FlightRecord struct {
	Id              string
	PilotDbId       string
	PilotName       string
	FlightNumber    string
	Callsign        string
	DepartureIcao   string
	ArrivalIcao     string
	AlternateIcao   string
	Route           string
	AircraftType    string
	FlightTime      float64
	LandingRate     float64
	LandingGrade    string
	MaxGForce       float64
	FuelUsed        float64
	Distance        float64
	Pax             int
	Cargo           int
	Score           int
	ComfortScore    int
	Deductions      []Deduction
	ApprovedStatus  ApprovedStatus
	Comments        string
	AcarsVersion    string
	RevenuePax      int
	RevenueCargo    int
	ExpenseFuel     int
	ExpenseAirport  int
	ExpensePilot    int
	ExpenseMaint    int
	RealProfit      int
	PassengerRating int
	PassengerReview string
	CreditsEarned   int
	SubmittedAt     time.Time
}

type Deduction struct {
	Reason string  `json:"reason"`
	Points float64 `json:"points"`
}

// Bid is a reserved flight plan. A bid and an active flight are mutually
// exclusive for a given pilot.
type Bid struct {
	Id                   string
	PilotDbId            string
	Callsign             string
	FlightNumber         string
	DepartureIcao        string
	ArrivalIcao          string
	Route                string
	AircraftType         string
	AircraftRegistration string
	Pax                  int
	Cargo                int
	PlannedFuel          float64
	ActivityId           string
	Status               BidStatus
	CreatedAt            time.Time
	ExpiresAt            time.Time
}

type ActiveFlight struct {
	Id            string
	PilotDbId     string
	Callsign      string
	FlightNumber  string
	DepartureIcao string
	ArrivalIcao   string
	StartedAt     time.Time
}

type AirlineFinance struct {
	Id            string
	Balance       int
	TotalRevenue  int
	TotalExpenses int
	LastUpdated   time.Time
}

type FinanceEntry struct {
	Amount      int
	Type        string
	Description string
	ReferenceId string
	PilotDbId   string
}

type MaintenanceEntry struct {
	AircraftRegistration string
	Type                 string
	HealthBefore         float64
	HealthAfter          float64
	CostCr               int
	Description          string
	FlightId             string
	PilotDbId            string
}

type Tour struct {
	Id            string
	Name          string
	IsActive      bool
	RewardCredits int
	Legs          []TourLeg
}

type TourLeg struct {
	DepartureIcao string   `json:"departure_icao"`
	ArrivalIcao   string   `json:"arrival_icao"`
	AircraftTypes []string `json:"aircraft_types,omitempty"`
}

type TourProgress struct {
	Id              string
	PilotDbId       string
	TourId          string
	CurrentLegIndex int
	CompletedLegs   []time.Time
	Status          TourStatus
	CompletedAt     time.Time
}

type Activity struct {
	Id           string
	Title        string
	Active       bool
	RewardPoints int
	Legs         []ActivityLeg
}

type ActivityLeg struct {
	Id            string   `json:"id"`
	DepartureIcao string   `json:"departure_icao,omitempty"`
	ArrivalIcao   string   `json:"arrival_icao,omitempty"`
	AircraftTypes []string `json:"aircraft_types,omitempty"`
}

type ActivityProgress struct {
	Id               string
	PilotDbId        string
	ActivityId       string
	LegsComplete     int
	PercentComplete  int
	CompletedLegIds  []string
	StartDate        time.Time
	LastLegFlownDate time.Time
	DateComplete     time.Time
	DaysToComplete   int
}

type Award struct {
	Id            string
	Name          string
	Category      string
	RequiredValue float64
	LinkedTourId  string
	Active        bool
}

type Rank struct {
	Name               string
	RankOrder          int
	RequirementHours   float64
	RequirementFlights int
	AutoPromote        bool
}

type DestinationOfMonth struct {
	Id          string
	AirportIcao string
	Month       string
	Year        int
	BonusPoints int
	IsActive    bool
}

type EventBooking struct {
	Id        string
	PilotDbId string
	EventId   string
	Status    string
	BookedAt  time.Time
}

type Event struct {
	Id        string
	Title     string
	IsActive  bool
	Airports  []string
	StartTime time.Time
	EndTime   time.Time
}
