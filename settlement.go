package skyops

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
)

// Landing rates below this raise a moderation flag regardless of the
// rejection threshold.
const moderationLandingRate = -800.0

// Checkride pass/fail limits.
const (
	checkrideMaxLandingRate = -400.0
	checkrideMaxGForce      = 1.6
)

const eventFlightBonus = 500

// Events with no end time stay open for twelve hours after they start.
const eventDefaultWindow = 12 * time.Hour

// EventWindowContains reports whether t falls inside the event's flight
// window.
func EventWindowContains(event Event, t time.Time) bool {
	if event.StartTime.IsZero() {
		return false
	}
	end := event.EndTime
	if end.IsZero() {
		end = event.StartTime.Add(eventDefaultWindow)
	}
	return !t.Before(event.StartTime) && !t.After(end)
}

// Rejection is the decision of the rejection gate for one submission.
type Rejection struct {
	Rejected bool
	Message  string
	Comments string
}

// EvaluateRejection applies the hard-landing and checkride policy gates.
// The hard-landing boundary is strict: a landing exactly at the threshold
// passes, anything below it rejects.
func EvaluateRejection(cfg Config, sub PirepSubmission) Rejection {
	if sub.LandingRate < cfg.AutoRejectLandingRate {
		return Rejection{
			Rejected: true,
			Message: fmt.Sprintf("PIREP REJECTED! Landing rate of %.0f fpm exceeds threshold of %.0f fpm.",
				sub.LandingRate, cfg.AutoRejectLandingRate),
		}
	}

	if IsCheckride(sub.FlightNumber) {
		status := ""
		if sub.LandingRate < checkrideMaxLandingRate {
			status = "Failed (Hard Landing)"
		}
		if g := submissionGForce(sub); math.Abs(g) > checkrideMaxGForce {
			status = "Failed (High G-Force)"
		}
		if status != "" {
			return Rejection{
				Rejected: true,
				Message:  fmt.Sprintf("Checkride FAILED: %s. Please try again.", status),
				Comments: fmt.Sprintf("CHECKRIDE FAILED: %s", status),
			}
		}
	}

	return Rejection{}
}

func submissionGForce(sub PirepSubmission) float64 {
	if sub.Log != nil && sub.Log.LandingAnalysis != nil && sub.Log.LandingAnalysis.GForceTouchdown != 0 {
		return sub.Log.LandingAnalysis.GForceTouchdown
	}
	if sub.Log != nil && sub.Log.MaxGForce != 0 {
		return sub.Log.MaxGForce
	}
	return 1.0
}

func submissionButterScore(sub PirepSubmission) float64 {
	if sub.Log != nil && sub.Log.LandingAnalysis != nil {
		return sub.Log.LandingAnalysis.ButterScore
	}
	return 0
}

func submissionDeductions(sub PirepSubmission) []Deduction {
	if sub.Log != nil {
		return sub.Log.Deductions
	}
	return nil
}

// SettlePirep runs the whole settlement pipeline for one submission:
// verify, gate, economy, fleet wear, progression, rank, response. Stages
// after the flight record and the pilot balance update are individually
// non-fatal; their failures are logged and excluded from the response. The
// active-flight/bid removal late in the sequence is the retry idempotency
// barrier.
func SettlePirep(ctx context.Context, conn DbConn, cfg Config, sub PirepSubmission, now time.Time, rng *rand.Rand) (SettlementResponse, error) {
	log := logrus.WithFields(logrus.Fields{
		"pilot":    sub.PilotId,
		"callsign": sub.Callsign,
	})

	if err := VerifySignature(cfg.AppKey, sub.PilotId, sub.LandingRate, sub.Timestamp, sub.Signature, now); err != nil {
		return SettlementResponse{}, err
	}

	pilot, err := GetPilot(ctx, conn, sub.PilotId)
	if errors.Is(err, pgx.ErrNoRows) {
		return SettlementResponse{}, ErrPilotNotFound
	}
	if err != nil {
		return SettlementResponse{}, persistenceFailure("unable to load pilot", err)
	}
	if pilot.Status == "Blacklist" {
		return SettlementResponse{}, ErrBlacklisted
	}

	if sub.LandingRate < moderationLandingRate {
		log.WithField("landingRate", sub.LandingRate).Warn("hard landing flagged for moderation")
	}

	acarsVersion := sub.AcarsVersion
	if acarsVersion == "" {
		acarsVersion = "1.0.0"
	}
	score := sub.Score
	if score == 0 {
		score = 100
	}

	if rejection := EvaluateRejection(cfg, sub); rejection.Rejected {
		return settleRejection(ctx, conn, pilot, sub, rejection, score, acarsVersion, now)
	}

	// Randomness stays ahead of the calculator so the economy itself is
	// deterministic.
	pax, cargo := SimulateLoad(sub.Pax, sub.Cargo, rng)

	dotmBonus := 0
	if dotm, err := GetActiveDotm(ctx, conn); err == nil {
		applies, lapsed := DotmApplies(dotm, sub.DepartureIcao, sub.ArrivalIcao, now)
		if applies {
			dotmBonus = dotm.BonusPoints
		}
		if lapsed {
			if err := DeactivateDotm(ctx, conn, dotm.Id); err != nil {
				log.WithError(err).Error("unable to deactivate lapsed DOTM")
			}
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.WithError(err).Error("DOTM lookup failed")
	}

	econ := CalculateEconomy(cfg, EconomyInput{
		Pax:           pax,
		Cargo:         cargo,
		DistanceNm:    sub.DistanceNm,
		FuelUsed:      sub.FuelUsed,
		FlightMinutes: sub.FlightTimeMinutes,
		Score:         score,
		DotmBonus:     dotmBonus,
		ButterScore:   submissionButterScore(sub),
	})

	checkridePassed := IsCheckride(sub.FlightNumber)

	record := FlightRecord{
		PilotDbId:       pilot.Id,
		PilotName:       pilot.FullName(),
		FlightNumber:    orDefault(sub.FlightNumber, "N/A"),
		Callsign:        sub.Callsign,
		DepartureIcao:   sub.DepartureIcao,
		ArrivalIcao:     sub.ArrivalIcao,
		AlternateIcao:   sub.AlternateIcao,
		Route:           sub.Route,
		AircraftType:    sub.AircraftType,
		FlightTime:      sub.FlightTimeMinutes,
		LandingRate:     sub.LandingRate,
		LandingGrade:    LandingGrade(sub.LandingRate),
		MaxGForce:       submissionGForce(sub),
		FuelUsed:        sub.FuelUsed,
		Distance:        sub.DistanceNm,
		Pax:             pax,
		Cargo:           cargo,
		Score:           score,
		ComfortScore:    orDefaultInt(sub.ComfortScore, 100),
		Deductions:      submissionDeductions(sub),
		ApprovedStatus:  StatusAccepted,
		Comments:        sub.Comments,
		AcarsVersion:    acarsVersion,
		RevenuePax:      econ.RevenuePax,
		RevenueCargo:    econ.RevenueCargo,
		ExpenseFuel:     econ.CostFuel,
		ExpenseAirport:  econ.CostLanding,
		ExpensePilot:    econ.CostPilot,
		ExpenseMaint:    econ.CostMaintenance,
		RealProfit:      econ.NetProfit,
		PassengerRating: PassengerRating(score),
		PassengerReview: PassengerReview(sub.LandingRate, score, rng),
		SubmittedAt:     now,
	}

	// Must succeed: the flight record is the primary ledger row.
	record, err = SaveFlightRecord(ctx, conn, record)
	if err != nil {
		return SettlementResponse{}, persistenceFailure("failed to persist flight record", err)
	}

	// Airline finances. Non-fatal by taxonomy: the flight record already
	// exists and the pilot payout below is the second must-succeed stage.
	if finance, err := EnsureAirlineFinance(ctx, conn); err != nil {
		log.WithError(err).Error("airline finance stage failed")
	} else {
		entries := []FinanceEntry{
			{Amount: econ.TotalRevenue, Type: "Flight Revenue", Description: fmt.Sprintf("Revenue Flight %s (%s-%s)", sub.Callsign, sub.DepartureIcao, sub.ArrivalIcao), ReferenceId: record.Id, PilotDbId: pilot.Id},
			{Amount: -econ.CostFuel, Type: "Fuel Cost", Description: fmt.Sprintf("Fuel for %s", sub.Callsign), ReferenceId: record.Id, PilotDbId: pilot.Id},
			{Amount: -econ.CostLanding, Type: "Landing Fee", Description: fmt.Sprintf("Landing Fees at %s", sub.ArrivalIcao), ReferenceId: record.Id, PilotDbId: pilot.Id},
			{Amount: -econ.CostPilot, Type: "Pilot Pay", Description: fmt.Sprintf("Pilot Salary for %s", pilot.FullName()), ReferenceId: record.Id, PilotDbId: pilot.Id},
			{Amount: -econ.CostMaintenance, Type: "Maintenance", Description: fmt.Sprintf("Wear & Tear for %s", sub.AircraftType), ReferenceId: record.Id, PilotDbId: pilot.Id},
			{Amount: econ.TotalDeductions, Type: "FLIGHT_REVENUE_SPLIT", Description: fmt.Sprintf("Vault deposit: FuelTax %d Cr + Penalties %d Cr from %s", econ.FuelTax, econ.Penalty, sub.Callsign), ReferenceId: record.Id, PilotDbId: pilot.Id},
		}
		if err := SaveFinanceEntries(ctx, conn, entries); err != nil {
			log.WithError(err).Error("finance ledger stage failed")
		}
		if err := ApplyAirlineFinance(ctx, conn, finance.Id, econ.NetProfit+econ.TotalDeductions, econ.TotalRevenue, econ.TotalExpenses); err != nil {
			log.WithError(err).Error("airline balance stage failed")
		}
	}

	flightCredits := econ.FlightCredits()

	// Must succeed: the pilot payout and running totals.
	if err := ApplyPilotFlightTotals(ctx, conn, pilot.Id, sub.FlightTimeMinutes/60, flightCredits, econ.TotalRevenue, sub.ArrivalIcao); err != nil {
		return SettlementResponse{}, persistenceFailure("failed to update pilot balance", err)
	}

	// Fleet resolution and wear.
	closedBid, bidErr := GetOpenBid(ctx, conn, pilot.Id, sub.Callsign)
	haveBid := bidErr == nil
	if bidErr != nil && !errors.Is(bidErr, pgx.ErrNoRows) {
		log.WithError(bidErr).Error("bid lookup failed")
	}

	aircraftHealth := 100.0
	aircraft, acErr := resolveAircraft(ctx, conn, sub, closedBid, haveBid)
	if acErr != nil {
		log.WithError(acErr).Warn("no fleet aircraft resolved for flight")
	}

	if haveBid {
		if err := DeleteBid(ctx, conn, closedBid.Id); err != nil {
			log.WithError(err).Error("unable to delete closed bid")
		}
	}

	if acErr == nil {
		healthBefore := aircraft.Condition
		damage := ApplyWear(&aircraft, cfg, WearInput{
			LandingRate:    sub.LandingRate,
			GForce:         submissionGForce(sub),
			ReportedDamage: reportedDamage(sub),
		}, sub.ArrivalIcao, sub.FlightTimeMinutes, record.Id, sub.Callsign)

		if sub.LandingRate < severeLandingRate {
			ScheduleRepair(&aircraft, cfg, sub.LandingRate, pilot.PilotId, record.Id, now)
		}

		if err := SaveFleetAircraft(ctx, conn, aircraft); err != nil {
			log.WithError(err).Error("fleet wear stage failed")
		} else {
			aircraftHealth = aircraft.Condition
			if damage > baseWearPercent {
				entryType := "DAMAGE_FLIGHT"
				if damage >= 50 {
					entryType = "DAMAGE_HARD_LANDING"
				}
				err := SaveMaintenanceEntry(ctx, conn, MaintenanceEntry{
					AircraftRegistration: aircraft.Registration,
					Type:                 entryType,
					HealthBefore:         healthBefore,
					HealthAfter:          aircraft.Condition,
					Description:          fmt.Sprintf("Flight %s: %.1f%% damage (LR: %.0f fpm)", sub.Callsign, damage, sub.LandingRate),
					FlightId:             record.Id,
					PilotDbId:            pilot.Id,
				})
				if err != nil {
					log.WithError(err).Error("maintenance log stage failed")
				}
			}
		}
	}

	flown := FlownLeg{
		DepartureIcao: sub.DepartureIcao,
		ArrivalIcao:   sub.ArrivalIcao,
		AircraftType:  sub.AircraftType,
	}

	tourMessage := ""
	if haveBid && closedBid.ActivityId != "" {
		msg, err := AdvanceActivity(ctx, conn, pilot, closedBid.ActivityId, flown, now)
		if err != nil {
			log.WithError(err).Error("activity progression stage failed")
		}
		tourMessage += msg
	}

	if msg, err := AdvanceTours(ctx, conn, pilot, flown, now); err != nil {
		log.WithError(err).Error("tour progression stage failed")
		tourMessage += msg
	} else {
		tourMessage += msg
	}

	// The idempotency barrier. Everything before this may resettle on a
	// crash-then-retry; everything after runs against a flight that can no
	// longer be resubmitted.
	if err := DeleteActiveFlight(ctx, conn, pilot.Id, sub.Callsign); err != nil {
		log.WithError(err).Error("unable to remove active flight")
	}

	eventMessage := ""
	isEventFlight := false
	if booking, event, err := GetLatestBookedEvent(ctx, conn, pilot.Id); err == nil {
		if event.IsActive && EventWindowContains(event, now) &&
			containsIcao(event.Airports, sub.DepartureIcao) && containsIcao(event.Airports, sub.ArrivalIcao) {
			if err := MarkEventBookingAttended(ctx, conn, booking.Id, record.Id, "completed"); err != nil {
				log.WithError(err).Error("event booking stage failed")
			} else {
				isEventFlight = true
				if err := AddPilotCredits(ctx, conn, pilot.Id, eventFlightBonus); err != nil {
					log.WithError(err).Error("event bonus payout failed")
				}
				eventMessage = fmt.Sprintf(" EVENT FLIGHT COMPLETED: %s! Bonus %d credits!", event.Title, eventFlightBonus)
			}
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.WithError(err).Error("event booking lookup failed")
	}

	newRank, err := CheckAndUpgradeRank(ctx, conn, pilot.Id)
	if err != nil {
		log.WithError(err).Error("rank evaluation stage failed")
	}

	newAwards, err := CheckAndGrantAwards(ctx, conn, pilot.Id)
	if err != nil {
		log.WithError(err).Error("award evaluation stage failed")
	}

	// Bonus credits on top of the economy payout.
	var credits CreditBreakdown
	creditsOk := false
	{
		routeKey := RouteKey(sub.DepartureIcao, sub.ArrivalIcao)
		plannedFuel := 0.0
		if haveBid {
			plannedFuel = closedBid.PlannedFuel
		}
		firstOfDay := pilot.LastFlightDate.IsZero() || !sameDay(pilot.LastFlightDate, now)
		if flightsToday, err := CountPilotFlightsOn(ctx, conn, pilot.Id, now); err == nil {
			// The current flight record is already persisted, so a count of
			// one means nothing flew before it today.
			firstOfDay = flightsToday <= 1
		} else {
			log.WithError(err).Error("daily flight count lookup failed")
		}
		credits = CalculateFlightCredits(cfg, CreditInput{
			DepartureIcao:  sub.DepartureIcao,
			ArrivalIcao:    sub.ArrivalIcao,
			LandingRate:    sub.LandingRate,
			FlightMinutes:  sub.FlightTimeMinutes,
			FuelUsed:       sub.FuelUsed,
			PlannedFuel:    plannedFuel,
			Deductions:     submissionDeductions(sub),
			IsEventFlight:  isEventFlight,
			IsNewRoute:     !containsIcao(pilot.RoutesFlown, routeKey),
			IsFirstOfDay:   firstOfDay,
			HasFlownBefore: !pilot.LastFlightDate.IsZero(),
		})
		creditsOk = true

		if credits.Total > 0 {
			if err := AddPilotCredits(ctx, conn, pilot.Id, credits.Total); err != nil {
				log.WithError(err).Error("bonus credit payout failed")
				creditsOk = false
			}
		}
		if err := UpdateFlightCredits(ctx, conn, record.Id, credits.Total, credits.Details); err != nil {
			log.WithError(err).Error("unable to persist credit breakdown")
		}
		if err := RecordPilotRoute(ctx, conn, pilot.Id, routeKey); err != nil {
			log.WithError(err).Error("unable to record flown route")
		}
	}

	message := fmt.Sprintf("PIREP accepted. Airline Profit: %+dcr. You earned: %dcr.", econ.NetProfit, flightCredits)
	if creditsOk {
		message += fmt.Sprintf(" +%d bonus CR", credits.Total)
	}
	if checkridePassed {
		message += " CHECKRIDE PASSED!"
	}
	if econ.DotmBonus > 0 {
		message += fmt.Sprintf(" (Includes %d DOTM Bonus!)", econ.DotmBonus)
	}
	if econ.ButterBonus > 0 {
		message += fmt.Sprintf(" (Includes %d Butter Bonus!)", econ.ButterBonus)
	}
	message += tourMessage
	message += eventMessage
	if newRank != "" {
		message += fmt.Sprintf(" PROMOTION: %s!", newRank)
	}

	resp := SettlementResponse{
		Success:            true,
		Message:            message,
		CreditsEarned:      flightCredits,
		CreditsBreakdown:   credits.Details,
		NewRank:            newRank,
		NewlyGrantedAwards: newAwards,
		AircraftHealth:     aircraftHealth,
		RevenueBreakdown: &RevenueBreakdown{
			GrossRevenue:    econ.TotalRevenue,
			FuelTax:         econ.FuelTax,
			PenaltyFines:    econ.Penalty,
			TotalDeductions: econ.TotalDeductions,
			NetPilotPay:     econ.NetPilotPay,
			DotmBonus:       econ.DotmBonus,
			ButterBonus:     econ.ButterBonus,
			TotalEarned:     flightCredits,
		},
	}
	if creditsOk {
		resp.BonusCredits = credits.Total
	}

	return resp, nil
}

// settleRejection is the terminal path for gated submissions: an immutable
// rejected record plus booking cleanup, and nothing else mutates.
func settleRejection(ctx context.Context, conn DbConn, pilot Pilot, sub PirepSubmission, rejection Rejection, score int, acarsVersion string, now time.Time) (SettlementResponse, error) {
	record := FlightRecord{
		PilotDbId:      pilot.Id,
		PilotName:      pilot.FullName(),
		FlightNumber:   orDefault(sub.FlightNumber, "N/A"),
		Callsign:       sub.Callsign,
		DepartureIcao:  sub.DepartureIcao,
		ArrivalIcao:    sub.ArrivalIcao,
		AlternateIcao:  sub.AlternateIcao,
		Route:          sub.Route,
		AircraftType:   sub.AircraftType,
		FlightTime:     sub.FlightTimeMinutes,
		LandingRate:    sub.LandingRate,
		LandingGrade:   LandingGrade(sub.LandingRate),
		MaxGForce:      submissionGForce(sub),
		FuelUsed:       sub.FuelUsed,
		Distance:       sub.DistanceNm,
		Pax:            sub.Pax,
		Cargo:          sub.Cargo,
		Score:          score,
		Deductions:     submissionDeductions(sub),
		ApprovedStatus: StatusRejected,
		Comments:       orDefault(rejection.Comments, sub.Comments),
		AcarsVersion:   acarsVersion,
		SubmittedAt:    now,
	}

	if _, err := SaveFlightRecord(ctx, conn, record); err != nil {
		return SettlementResponse{}, persistenceFailure("failed to persist rejected flight record", err)
	}

	if err := DeleteActiveFlight(ctx, conn, pilot.Id, sub.Callsign); err != nil {
		logrus.WithError(err).Error("unable to remove active flight after rejection")
	}
	if err := DeleteOpenBids(ctx, conn, pilot.Id); err != nil {
		logrus.WithError(err).Error("unable to remove open bids after rejection")
	}

	return SettlementResponse{Success: true, Message: rejection.Message}, nil
}

// resolveAircraft picks the specific tail: explicit registration first, then
// the closed bid's registration, then any aircraft of the right type parked
// at the departure field.
func resolveAircraft(ctx context.Context, conn DbConn, sub PirepSubmission, bid Bid, haveBid bool) (FleetAircraft, error) {
	if sub.AircraftRegistration != "" {
		a, err := GetFleetAircraftByRegistration(ctx, conn, sub.AircraftRegistration)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return FleetAircraft{}, err
		}
	}

	if haveBid && bid.AircraftRegistration != "" {
		a, err := GetFleetAircraftByRegistration(ctx, conn, bid.AircraftRegistration)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return FleetAircraft{}, err
		}
	}

	if sub.AircraftType != "" {
		a, err := GetFleetAircraftByTypeAtLocation(ctx, conn, sub.AircraftType, sub.DepartureIcao)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return FleetAircraft{}, err
		}
	}

	return FleetAircraft{}, ErrNoActiveAircraft
}

func reportedDamage(sub PirepSubmission) float64 {
	if sub.AirframeDamage != nil {
		return sub.AirframeDamage.TotalDamage
	}
	return 0
}

func containsIcao(list []string, icao string) bool {
	for _, v := range list {
		if v == icao {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func orDefaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
