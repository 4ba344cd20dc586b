package acars

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"skyops"
)

var (
	ErrTooManyRetries = errors.New("report submission retries exhausted")
	ErrUnauthorized   = errors.New("crew center rejected the credentials")
)

// ApiClient files pilot reports with the crew center. Submissions are
// signed with the shared app key right before they leave, so the
// timestamp always falls inside the server's replay window.
type ApiClient struct {
	httpClient http.Client
	baseURL    string
	appKey     string
	log        *logrus.Entry
}

func NewApiClient(baseURL string, appKey string) *ApiClient {
	return &ApiClient{
		httpClient: http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		appKey:     appKey,
		log:        logrus.WithField("component", "api"),
	}
}

// SubmitPirep signs and posts the report, retrying transient server
// failures. A 4xx other than 429 is returned to the caller unretried;
// policy rejections come back as a normal SettlementResponse.
func (c *ApiClient) SubmitPirep(ctx context.Context, sub skyops.PirepSubmission) (skyops.SettlementResponse, error) {
	var out skyops.SettlementResponse

	now := time.Now().UnixNano() / int64(time.Millisecond)
	sig := skyops.ComputeSignature(c.appKey, sub.PilotId, sub.LandingRate, now)
	sub.Timestamp = &now
	sub.Signature = &sig

	body, err := json.Marshal(sub)
	if err != nil {
		return out, fmt.Errorf("unable to encode pilot report: %w", err)
	}

	attemptCount := 0
	for {
		attemptCount += 1
		if attemptCount > 3 {
			return out, ErrTooManyRetries
		}

		request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/acars/pirep", bytes.NewReader(body))
		if err != nil {
			return out, fmt.Errorf("unable to create a new request with context: %w", err)
		}
		request.Header.Add("Content-Type", "application/json")

		response, err := c.httpClient.Do(request)
		if err != nil {
			return out, fmt.Errorf("unable to execute http request: %w", err)
		}

		responseBody, err := ioutil.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			return out, fmt.Errorf("unable to read response body: %w", err)
		}

		if response.StatusCode >= 200 && response.StatusCode < 300 {
			if err := json.Unmarshal(responseBody, &out); err != nil {
				return out, fmt.Errorf("unable to decode settlement response: %w", err)
			}
			return out, nil
		}

		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			return out, ErrUnauthorized
		}

		if response.StatusCode >= 500 {
			c.log.WithField("status", response.StatusCode).Warn("server error, retrying in 2 seconds")
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(2 * time.Second):
			}
			continue
		}

		e := skyops.ErrorResponse{}
		if err := json.Unmarshal(responseBody, &e); err == nil && e.Error != "" {
			return out, fmt.Errorf("report refused: %s", e.Error)
		}
		return out, fmt.Errorf("report refused with status %d", response.StatusCode)
	}
}

// BuildSubmission assembles a report from the finished session.
func BuildSubmission(snap Snapshot, version string) skyops.PirepSubmission {
	sub := skyops.PirepSubmission{
		PilotId:       snap.Auth.PilotId,
		FlightNumber:  snap.Flight.FlightNumber,
		Callsign:      snap.Flight.Callsign,
		DepartureIcao: snap.Flight.DepartureIcao,
		ArrivalIcao:   snap.Flight.ArrivalIcao,
		AircraftType:  snap.Flight.AircraftType,
		DistanceNm:    snap.Flight.DistanceNm,
		FuelUsed:      snap.Flight.FuelUsed,
		LandingRate:   snap.Flight.LandingRate,
		ComfortScore:  snap.Flight.ComfortScore,
		AcarsVersion:  version,
	}
	if d, err := time.ParseDuration(snap.Flight.FlightTime); err == nil {
		sub.FlightTimeMinutes = d.Minutes()
	}
	if snap.Bid != nil {
		sub.AircraftRegistration = snap.Bid.AircraftRegistration
		sub.Route = snap.Bid.Route
		sub.Pax = snap.Bid.Pax
		sub.Cargo = snap.Bid.Cargo
	}
	if snap.Touchdown != nil {
		sub.LandingRate = snap.Touchdown.Fpm
		sub.Score = snap.Touchdown.Score
		sub.Log = &skyops.FlightLog{
			MaxGForce: snap.Touchdown.GForce,
			LandingAnalysis: &skyops.LandingAnalysis{
				GForceTouchdown: snap.Touchdown.GForce,
			},
		}
	}
	return sub
}
