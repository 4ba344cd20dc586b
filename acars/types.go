// Package acars implements the client half of the flight tracking system:
// the bridge message router, telemetry filtering, touchdown detection and
// the bid/flight session lifecycle that ends in a submitted pilot report.
package acars

import (
	"time"
)

// Message is the tagged union delivered by the simulator bridge. Every
// envelope carries a "type" discriminator; exactly one of the typed payloads
// below corresponds to it.
type Message interface {
	MessageType() string
}

// TelemetrySnapshot is the instantaneous sim state. Ephemeral: each snapshot
// supersedes the previous one and nothing here is persisted by the session.
type TelemetrySnapshot struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Altitude         float64 `json:"altitude"`
	RadioAltitude    float64 `json:"radioAltitude"`
	Heading          float64 `json:"heading"`
	GroundSpeed      float64 `json:"groundSpeed"`
	Ias              float64 `json:"ias"`
	VerticalSpeed    float64 `json:"verticalSpeed"`
	Pitch            float64 `json:"pitch"`
	Bank             float64 `json:"bank"`
	GForce           float64 `json:"gForce"`
	OnGround         bool    `json:"onGround"`
	EnginesOn        bool    `json:"enginesOn"`
	TotalFuel        float64 `json:"totalFuel"`
	StallWarning     bool    `json:"stallWarning"`
	OverspeedWarning bool    `json:"overspeedWarning"`
	AircraftTitle    string  `json:"aircraftTitle"`
	Phase            string  `json:"phase"`
	FuelPercent      float64 `json:"fuelPercent"`
	FlightProgress   float64 `json:"flightProgress"`
	DistanceFlownNm  float64 `json:"distanceFlownNm"`
}

func (TelemetrySnapshot) MessageType() string { return "telemetry" }

type AuthState struct {
	IsLoggedIn bool    `json:"isLoggedIn"`
	PilotName  string  `json:"pilotName"`
	PilotId    string  `json:"pilotId"`
	PilotRank  string  `json:"pilotRank"`
	PilotHours float64 `json:"pilotHours"`
}

func (AuthState) MessageType() string { return "auth" }

type ConnectionState struct {
	SimConnected bool `json:"simConnected"`
	ApiConnected bool `json:"apiConnected"`
}

func (ConnectionState) MessageType() string { return "connection" }

type FlightState struct {
	IsActive        bool    `json:"isActive"`
	FlightNumber    string  `json:"flightNumber"`
	Callsign        string  `json:"callsign"`
	DepartureIcao   string  `json:"departureIcao"`
	ArrivalIcao     string  `json:"arrivalIcao"`
	AircraftType    string  `json:"aircraftType"`
	CurrentPhase    string  `json:"currentPhase"`
	FlightTime      string  `json:"flightTime"`
	ComfortScore    int     `json:"comfortScore"`
	ExceedanceCount int     `json:"exceedanceCount"`
	DistanceNm      float64 `json:"distanceNm"`
	FuelUsed        float64 `json:"fuelUsed"`
	LandingRate     float64 `json:"landingRate"`
	Progress        float64 `json:"progress"`
}

func (FlightState) MessageType() string { return "flight" }

type ScoreResult struct {
	FinalScore   int    `json:"finalScore"`
	LandingGrade string `json:"landingGrade"`
}

func (ScoreResult) MessageType() string { return "score" }

type ActivityEntry struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (ActivityEntry) MessageType() string { return "activity" }

type ExceedanceEntry struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (ExceedanceEntry) MessageType() string { return "exceedance" }

type WeatherReport struct {
	Metar    string  `json:"metar"`
	Qnh      float64 `json:"qnh"`
	Pressure string  `json:"pressure"`
}

func (WeatherReport) MessageType() string { return "weather" }

type TouchdownPoint struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	LandingRate float64 `json:"landingRate"`
	GroundSpeed float64 `json:"groundSpeed"`
}

func (TouchdownPoint) MessageType() string { return "touchdown" }

// BidData is a reserved flight plan pushed down from the crew center. An
// empty callsign clears the current bid.
type BidData struct {
	Callsign             string    `json:"callsign"`
	FlightNumber         string    `json:"flightNumber"`
	DepartureIcao        string    `json:"departureIcao"`
	ArrivalIcao          string    `json:"arrivalIcao"`
	Route                string    `json:"route"`
	AircraftType         string    `json:"aircraftType"`
	AircraftRegistration string    `json:"aircraftRegistration"`
	Pax                  int       `json:"pax"`
	Cargo                int       `json:"cargo"`
	CreatedAt            time.Time `json:"createdAt"`
	ExpiresAt            time.Time `json:"expiresAt"`
}

func (BidData) MessageType() string { return "bid" }

type UpdateStatus struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Version  string  `json:"version"`
	Progress float64 `json:"progress"`
}

func (UpdateStatus) MessageType() string { return "updateStatus" }

// StartFlightParams is the outbound payload for the StartFlight verb.
type StartFlightParams struct {
	PilotId              string `json:"pilotId"`
	FlightNumber         string `json:"flightNumber"`
	Callsign             string `json:"callsign"`
	DepartureIcao        string `json:"departureIcao"`
	ArrivalIcao          string `json:"arrivalIcao"`
	Route                string `json:"route"`
	AircraftType         string `json:"aircraftType"`
	AircraftRegistration string `json:"aircraftRegistration"`
	Pax                  int    `json:"pax"`
	Cargo                int    `json:"cargo"`
}

// HostBridge is the capability surface toward the native host. Selected once
// at session construction; browser-style development mode plugs in the
// no-op implementation instead of branching at every call site.
type HostBridge interface {
	StartFlight(params StartFlightParams) error
	EndFlight() error
	CancelFlight() error
	FetchBid() error
	CancelBid() error
}

// NoopBridge is the null-object bridge for development without a host.
type NoopBridge struct{}

func (NoopBridge) StartFlight(StartFlightParams) error { return nil }
func (NoopBridge) EndFlight() error                    { return nil }
func (NoopBridge) CancelFlight() error                 { return nil }
func (NoopBridge) FetchBid() error                     { return nil }
func (NoopBridge) CancelBid() error                    { return nil }
