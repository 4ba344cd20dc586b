package skyops

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type DbConn interface {
	Exec(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...interface{}) pgx.Row
}

// GetPilot resolves a pilot by airline pilot id or email, case-insensitively.
func GetPilot(ctx context.Context, conn DbConn, pilotId string) (Pilot, error) {
	p := Pilot{}
	err := conn.QueryRow(ctx, `
		SELECT
			 id::text
			,pilot_id
			,email
			,first_name
			,last_name
			,rank
			,status
			,balance
			,total_credits
			,total_flights
			,total_hours
			,transfer_hours
			,current_location
			,routes_flown
			,last_flight_date
			,last_activity
		FROM pilot
		WHERE LOWER(pilot_id) = LOWER($1) OR LOWER(email) = LOWER($1)
		LIMIT 1;
		`,
		pilotId,
	).Scan(
		&p.Id,
		&p.PilotId,
		&p.Email,
		&p.FirstName,
		&p.LastName,
		&p.Rank,
		&p.Status,
		&p.Balance,
		&p.TotalCredits,
		&p.TotalFlights,
		&p.TotalHours,
		&p.TransferHours,
		&p.CurrentLocation,
		&p.RoutesFlown,
		&p.LastFlightDate,
		&p.LastActivity,
	)
	if err != nil {
		return Pilot{}, err
	}

	return p, nil
}

// ApplyPilotFlightTotals performs the must-succeed balance update: document
// level atomic increments of the running totals plus the location move.
func ApplyPilotFlightTotals(ctx context.Context, conn DbConn, pilotDbId string, hours float64, creditsEarned int, revenue int, arrivalIcao string) error {
	_, err := conn.Exec(ctx, `
		UPDATE pilot
		SET total_flights = total_flights + 1,
			total_hours = total_hours + $2,
			total_credits = total_credits + $3,
			balance = balance + $4,
			current_location = $5,
			last_activity = timezone('utc', NOW()),
			status = 'Active'
		WHERE id = $1::uuid;
		`,
		pilotDbId,
		hours,
		revenue,
		creditsEarned,
		arrivalIcao,
	)
	if err != nil {
		return fmt.Errorf("unable to apply pilot flight totals: %w", err)
	}

	return nil
}

// AddPilotCredits is used by the progression and event stages for reward
// payouts; increments are commutative so retried side stages stay safe to
// reorder.
func AddPilotCredits(ctx context.Context, conn DbConn, pilotDbId string, amount int) error {
	_, err := conn.Exec(ctx, `
		UPDATE pilot
		SET balance = balance + $2,
			total_credits = total_credits + $2
		WHERE id = $1::uuid;
		`,
		pilotDbId,
		amount,
	)

	return err
}

func RecordPilotRoute(ctx context.Context, conn DbConn, pilotDbId string, routeKey string) error {
	_, err := conn.Exec(ctx, `
		UPDATE pilot
		SET routes_flown = array_append(routes_flown, $2),
			last_flight_date = timezone('utc', NOW())
		WHERE id = $1::uuid
			AND NOT ($2 = ANY(routes_flown));
		`,
		pilotDbId,
		routeKey,
	)
	if err != nil {
		return err
	}

	_, err = conn.Exec(ctx, `
		UPDATE pilot SET last_flight_date = timezone('utc', NOW()) WHERE id = $1::uuid;
		`,
		pilotDbId,
	)

	return err
}

func UpdatePilotRank(ctx context.Context, conn DbConn, pilotDbId string, rank string) error {
	_, err := conn.Exec(ctx, `
		UPDATE pilot SET rank = $2 WHERE id = $1::uuid;
		`,
		pilotDbId,
		rank,
	)

	return err
}

func GetFleetAircraftByRegistration(ctx context.Context, conn DbConn, registration string) (FleetAircraft, error) {
	return scanFleetAircraft(conn.QueryRow(ctx, fleetAircraftSelect+`
		WHERE registration = $1
		LIMIT 1;
		`,
		registration,
	))
}

func GetFleetAircraftByTypeAtLocation(ctx context.Context, conn DbConn, aircraftType string, location string) (FleetAircraft, error) {
	return scanFleetAircraft(conn.QueryRow(ctx, fleetAircraftSelect+`
		WHERE aircraft_type = $1 AND current_location = $2
		LIMIT 1;
		`,
		aircraftType,
		location,
	))
}

func GetFleet(ctx context.Context, conn DbConn) ([]FleetAircraft, error) {
	rows, err := conn.Query(ctx, fleetAircraftSelect+` ORDER BY registration;`)
	if err != nil {
		return nil, fmt.Errorf("unable to get fleet from db: %w", err)
	}
	defer rows.Close()

	var fleet []FleetAircraft
	for rows.Next() {
		a, err := scanFleetAircraft(rows)
		if err != nil {
			return nil, err
		}
		fleet = append(fleet, a)
	}

	return fleet, nil
}

const fleetAircraftSelect = `
	SELECT
		 id::text
		,registration
		,aircraft_type
		,current_location
		,condition
		,status
		,grounded_reason
		,flight_count
		,total_hours
		,damage_log
		,repair_until
		,damaged_at
		,damaged_by_pilot
		,damaged_by_flight
	FROM fleet_aircraft`

func scanFleetAircraft(row pgx.Row) (FleetAircraft, error) {
	a := FleetAircraft{}
	err := row.Scan(
		&a.Id,
		&a.Registration,
		&a.AircraftType,
		&a.CurrentLocation,
		&a.Condition,
		&a.Status,
		&a.GroundedReason,
		&a.FlightCount,
		&a.TotalHours,
		&a.DamageLog,
		&a.RepairUntil,
		&a.DamagedAt,
		&a.DamagedByPilot,
		&a.DamagedByFlight,
	)
	if err != nil {
		return FleetAircraft{}, err
	}

	return a, nil
}

func SaveFleetAircraft(ctx context.Context, conn DbConn, a FleetAircraft) error {
	_, err := conn.Exec(ctx, `
		UPDATE fleet_aircraft
		SET current_location = $2,
			condition = $3,
			status = $4,
			grounded_reason = $5,
			flight_count = $6,
			total_hours = $7,
			damage_log = $8,
			repair_until = $9,
			damaged_at = $10,
			damaged_by_pilot = $11,
			damaged_by_flight = $12,
			modified_at = timezone('utc', NOW())
		WHERE id = $1::uuid;
		`,
		a.Id,
		a.CurrentLocation,
		a.Condition,
		string(a.Status),
		a.GroundedReason,
		a.FlightCount,
		a.TotalHours,
		a.DamageLog,
		a.RepairUntil,
		a.DamagedAt,
		a.DamagedByPilot,
		a.DamagedByFlight,
	)
	if err != nil {
		return fmt.Errorf("unable to save fleet aircraft %s: %w", a.Registration, err)
	}

	return nil
}

// SaveFlightRecord inserts the immutable ledger row and returns it with the
// Id populated.
func SaveFlightRecord(ctx context.Context, conn DbConn, f FlightRecord) (FlightRecord, error) {
	err := conn.QueryRow(ctx, `
		INSERT INTO flight (
			 pilot_id
			,pilot_name
			,flight_number
			,callsign
			,departure_icao
			,arrival_icao
			,alternate_icao
			,route
			,aircraft_type
			,flight_time
			,landing_rate
			,landing_grade
			,max_g_force
			,fuel_used
			,distance
			,pax
			,cargo
			,score
			,comfort_score
			,deductions
			,approved_status
			,comments
			,acars_version
			,revenue_passenger
			,revenue_cargo
			,expense_fuel
			,expense_airport
			,expense_pilot
			,expense_maintenance
			,real_profit
			,passenger_rating
			,passenger_review
			,submitted_at
		) VALUES (
			$1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33
		)
		RETURNING id;
		`,
		f.PilotDbId,
		f.PilotName,
		f.FlightNumber,
		f.Callsign,
		f.DepartureIcao,
		f.ArrivalIcao,
		f.AlternateIcao,
		f.Route,
		f.AircraftType,
		f.FlightTime,
		f.LandingRate,
		f.LandingGrade,
		f.MaxGForce,
		f.FuelUsed,
		f.Distance,
		f.Pax,
		f.Cargo,
		f.Score,
		f.ComfortScore,
		f.Deductions,
		int(f.ApprovedStatus),
		f.Comments,
		f.AcarsVersion,
		f.RevenuePax,
		f.RevenueCargo,
		f.ExpenseFuel,
		f.ExpenseAirport,
		f.ExpensePilot,
		f.ExpenseMaint,
		f.RealProfit,
		f.PassengerRating,
		f.PassengerReview,
		f.SubmittedAt,
	).Scan(&f.Id)
	if err != nil {
		return FlightRecord{}, fmt.Errorf("unable to save flight record: %w", err)
	}

	return f, nil
}

func UpdateFlightCredits(ctx context.Context, conn DbConn, flightId string, creditsEarned int, breakdown []string) error {
	_, err := conn.Exec(ctx, `
		UPDATE flight
		SET credits_earned = $2, credits_breakdown = $3
		WHERE id = $1::uuid;
		`,
		flightId,
		creditsEarned,
		breakdown,
	)

	return err
}

// GetOpenBid finds the bid being flown: same pilot, same callsign, still in
// an open status.
func GetOpenBid(ctx context.Context, conn DbConn, pilotDbId string, callsign string) (Bid, error) {
	b := Bid{}
	err := conn.QueryRow(ctx, `
		SELECT
			 id::text
			,pilot_id::text
			,callsign
			,flight_number
			,departure_icao
			,arrival_icao
			,route
			,aircraft_type
			,aircraft_registration
			,pax
			,cargo
			,planned_fuel
			,COALESCE(activity_id::text, '')
			,status
			,created_at
			,expires_at
		FROM bid
		WHERE pilot_id = $1::uuid
			AND callsign = $2
			AND status IN ('Active', 'InProgress')
		LIMIT 1;
		`,
		pilotDbId,
		callsign,
	).Scan(
		&b.Id,
		&b.PilotDbId,
		&b.Callsign,
		&b.FlightNumber,
		&b.DepartureIcao,
		&b.ArrivalIcao,
		&b.Route,
		&b.AircraftType,
		&b.AircraftRegistration,
		&b.Pax,
		&b.Cargo,
		&b.PlannedFuel,
		&b.ActivityId,
		&b.Status,
		&b.CreatedAt,
		&b.ExpiresAt,
	)
	if err != nil {
		return Bid{}, err
	}

	return b, nil
}

func DeleteBid(ctx context.Context, conn DbConn, bidId string) error {
	_, err := conn.Exec(ctx, `DELETE FROM bid WHERE id = $1::uuid;`, bidId)
	return err
}

// DeleteOpenBids clears every open bid for the pilot; used by the rejection
// paths which tear down the whole booking state.
func DeleteOpenBids(ctx context.Context, conn DbConn, pilotDbId string) error {
	_, err := conn.Exec(ctx, `
		DELETE FROM bid
		WHERE pilot_id = $1::uuid AND status IN ('Active', 'InProgress');
		`,
		pilotDbId,
	)

	return err
}

// GetActiveFlight finds the pilot's most recent in-progress flight.
func GetActiveFlight(ctx context.Context, conn DbConn, pilotDbId string) (ActiveFlight, error) {
	f := ActiveFlight{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, pilot_id::text, callsign, flight_number, departure_icao, arrival_icao, started_at
		FROM active_flight
		WHERE pilot_id = $1::uuid
		ORDER BY started_at DESC
		LIMIT 1;
		`,
		pilotDbId,
	).Scan(&f.Id, &f.PilotDbId, &f.Callsign, &f.FlightNumber, &f.DepartureIcao, &f.ArrivalIcao, &f.StartedAt)
	if err != nil {
		return ActiveFlight{}, err
	}

	return f, nil
}

// DeleteActiveFlight is the settlement idempotency barrier: once the row is
// gone a retried submission has nothing left to settle against.
func DeleteActiveFlight(ctx context.Context, conn DbConn, pilotDbId string, callsign string) error {
	_, err := conn.Exec(ctx, `
		DELETE FROM active_flight
		WHERE pilot_id = $1::uuid AND callsign = $2;
		`,
		pilotDbId,
		callsign,
	)

	return err
}

// EnsureAirlineFinance returns the single airline-wide finance row, creating
// it with the genesis balance when missing.
func EnsureAirlineFinance(ctx context.Context, conn DbConn) (AirlineFinance, error) {
	f := AirlineFinance{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, balance, total_revenue, total_expenses, last_updated
		FROM airline_finance
		LIMIT 1;
		`,
	).Scan(&f.Id, &f.Balance, &f.TotalRevenue, &f.TotalExpenses, &f.LastUpdated)
	if err == pgx.ErrNoRows {
		err = conn.QueryRow(ctx, `
			INSERT INTO airline_finance (balance) VALUES (1000000)
			RETURNING id::text, balance, total_revenue, total_expenses, last_updated;
			`,
		).Scan(&f.Id, &f.Balance, &f.TotalRevenue, &f.TotalExpenses, &f.LastUpdated)
	}
	if err != nil {
		return AirlineFinance{}, fmt.Errorf("unable to load airline finance: %w", err)
	}

	return f, nil
}

func SaveFinanceEntries(ctx context.Context, conn DbConn, entries []FinanceEntry) error {
	for _, e := range entries {
		_, err := conn.Exec(ctx, `
			INSERT INTO finance_log (amount, type, description, reference_id, pilot_id)
			VALUES ($1, $2, $3, $4::uuid, $5::uuid);
			`,
			e.Amount,
			e.Type,
			e.Description,
			e.ReferenceId,
			e.PilotDbId,
		)
		if err != nil {
			return fmt.Errorf("unable to save finance entry %q: %w", e.Type, err)
		}
	}

	return nil
}

func ApplyAirlineFinance(ctx context.Context, conn DbConn, financeId string, balanceDelta int, revenue int, expenses int) error {
	_, err := conn.Exec(ctx, `
		UPDATE airline_finance
		SET balance = balance + $2,
			total_revenue = total_revenue + $3,
			total_expenses = total_expenses + $4,
			last_updated = timezone('utc', NOW())
		WHERE id = $1::uuid;
		`,
		financeId,
		balanceDelta,
		revenue,
		expenses,
	)

	return err
}

func SaveMaintenanceEntry(ctx context.Context, conn DbConn, e MaintenanceEntry) error {
	_, err := conn.Exec(ctx, `
		INSERT INTO maintenance_log (
			aircraft_registration, type, health_before, health_after, cost_cr, description, flight_id, pilot_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7::uuid, $8::uuid);
		`,
		e.AircraftRegistration,
		e.Type,
		e.HealthBefore,
		e.HealthAfter,
		e.CostCr,
		e.Description,
		e.FlightId,
		e.PilotDbId,
	)

	return err
}

func GetActiveDotm(ctx context.Context, conn DbConn) (DestinationOfMonth, error) {
	d := DestinationOfMonth{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, airport_icao, month, year, bonus_points, is_active
		FROM destination_of_month
		WHERE is_active = TRUE
		LIMIT 1;
		`,
	).Scan(&d.Id, &d.AirportIcao, &d.Month, &d.Year, &d.BonusPoints, &d.IsActive)
	if err != nil {
		return DestinationOfMonth{}, err
	}

	return d, nil
}

func DeactivateDotm(ctx context.Context, conn DbConn, dotmId string) error {
	_, err := conn.Exec(ctx, `
		UPDATE destination_of_month SET is_active = FALSE WHERE id = $1::uuid;
		`,
		dotmId,
	)

	return err
}

func GetActivity(ctx context.Context, conn DbConn, activityId string) (Activity, error) {
	a := Activity{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, title, active, reward_points, legs
		FROM activity
		WHERE id = $1::uuid
		LIMIT 1;
		`,
		activityId,
	).Scan(&a.Id, &a.Title, &a.Active, &a.RewardPoints, &a.Legs)
	if err != nil {
		return Activity{}, err
	}

	return a, nil
}

func GetOrCreateActivityProgress(ctx context.Context, conn DbConn, pilotDbId string, activityId string) (ActivityProgress, error) {
	p := ActivityProgress{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, pilot_id::text, activity_id::text, legs_complete, percent_complete,
			completed_leg_ids, start_date, last_leg_flown_date, date_complete, days_to_complete
		FROM activity_progress
		WHERE pilot_id = $1::uuid AND activity_id = $2::uuid
		LIMIT 1;
		`,
		pilotDbId,
		activityId,
	).Scan(&p.Id, &p.PilotDbId, &p.ActivityId, &p.LegsComplete, &p.PercentComplete,
		&p.CompletedLegIds, &p.StartDate, &p.LastLegFlownDate, &p.DateComplete, &p.DaysToComplete)
	if err == pgx.ErrNoRows {
		err = conn.QueryRow(ctx, `
			INSERT INTO activity_progress (pilot_id, activity_id)
			VALUES ($1::uuid, $2::uuid)
			RETURNING id::text, pilot_id::text, activity_id::text, legs_complete, percent_complete,
				completed_leg_ids, start_date, last_leg_flown_date, date_complete, days_to_complete;
			`,
			pilotDbId,
			activityId,
		).Scan(&p.Id, &p.PilotDbId, &p.ActivityId, &p.LegsComplete, &p.PercentComplete,
			&p.CompletedLegIds, &p.StartDate, &p.LastLegFlownDate, &p.DateComplete, &p.DaysToComplete)
	}
	if err != nil {
		return ActivityProgress{}, err
	}

	return p, nil
}

func SaveActivityProgress(ctx context.Context, conn DbConn, p ActivityProgress) error {
	_, err := conn.Exec(ctx, `
		UPDATE activity_progress
		SET legs_complete = $2,
			percent_complete = $3,
			completed_leg_ids = $4,
			last_leg_flown_date = $5,
			date_complete = $6,
			days_to_complete = $7
		WHERE id = $1::uuid;
		`,
		p.Id,
		p.LegsComplete,
		p.PercentComplete,
		p.CompletedLegIds,
		p.LastLegFlownDate,
		p.DateComplete,
		p.DaysToComplete,
	)

	return err
}

func GetInProgressTours(ctx context.Context, conn DbConn, pilotDbId string) ([]TourProgress, error) {
	rows, err := conn.Query(ctx, `
		SELECT id::text, pilot_id::text, tour_id::text, current_leg_index, completed_legs, status, completed_at
		FROM tour_progress
		WHERE pilot_id = $1::uuid AND status = 'In Progress';
		`,
		pilotDbId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []TourProgress
	for rows.Next() {
		p := TourProgress{}
		err := rows.Scan(&p.Id, &p.PilotDbId, &p.TourId, &p.CurrentLegIndex, &p.CompletedLegs, &p.Status, &p.CompletedAt)
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}

	return progress, nil
}

func GetTour(ctx context.Context, conn DbConn, tourId string) (Tour, error) {
	t := Tour{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, name, is_active, reward_credits, legs
		FROM tour
		WHERE id = $1::uuid
		LIMIT 1;
		`,
		tourId,
	).Scan(&t.Id, &t.Name, &t.IsActive, &t.RewardCredits, &t.Legs)
	if err != nil {
		return Tour{}, err
	}

	return t, nil
}

func SaveTourProgress(ctx context.Context, conn DbConn, p TourProgress) error {
	_, err := conn.Exec(ctx, `
		UPDATE tour_progress
		SET current_leg_index = $2,
			completed_legs = $3,
			status = $4,
			completed_at = $5
		WHERE id = $1::uuid;
		`,
		p.Id,
		p.CurrentLegIndex,
		p.CompletedLegs,
		string(p.Status),
		p.CompletedAt,
	)

	return err
}

func GetAwardByLinkedTour(ctx context.Context, conn DbConn, tourId string) (Award, error) {
	a := Award{}
	err := conn.QueryRow(ctx, `
		SELECT id::text, name, category, required_value, COALESCE(linked_tour_id::text, ''), active
		FROM award
		WHERE linked_tour_id = $1::uuid AND active = TRUE
		LIMIT 1;
		`,
		tourId,
	).Scan(&a.Id, &a.Name, &a.Category, &a.RequiredValue, &a.LinkedTourId, &a.Active)
	if err != nil {
		return Award{}, err
	}

	return a, nil
}

func GetAutomatedAwards(ctx context.Context, conn DbConn) ([]Award, error) {
	rows, err := conn.Query(ctx, `
		SELECT id::text, name, category, required_value, COALESCE(linked_tour_id::text, ''), active
		FROM award
		WHERE active = TRUE AND category IN ('Flight Hours', 'Flights', 'Landings');
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []Award
	for rows.Next() {
		a := Award{}
		err := rows.Scan(&a.Id, &a.Name, &a.Category, &a.RequiredValue, &a.LinkedTourId, &a.Active)
		if err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}

	return awards, nil
}

func HasPilotAward(ctx context.Context, conn DbConn, pilotDbId string, awardId string) (bool, error) {
	var count int
	err := conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM pilot_award
		WHERE pilot_id = $1::uuid AND award_id = $2::uuid;
		`,
		pilotDbId,
		awardId,
	).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func GrantPilotAward(ctx context.Context, conn DbConn, pilotDbId string, awardId string) error {
	_, err := conn.Exec(ctx, `
		INSERT INTO pilot_award (pilot_id, award_id, earned_at)
		VALUES ($1::uuid, $2::uuid, timezone('utc', NOW()))
		ON CONFLICT (pilot_id, award_id) DO NOTHING;
		`,
		pilotDbId,
		awardId,
	)

	return err
}

func GetRanks(ctx context.Context, conn DbConn) ([]Rank, error) {
	rows, err := conn.Query(ctx, `
		SELECT name, rank_order, requirement_hours, requirement_flights, auto_promote
		FROM rank
		ORDER BY rank_order;
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranks []Rank
	for rows.Next() {
		r := Rank{}
		err := rows.Scan(&r.Name, &r.RankOrder, &r.RequirementHours, &r.RequirementFlights, &r.AutoPromote)
		if err != nil {
			return nil, err
		}
		ranks = append(ranks, r)
	}

	return ranks, nil
}

func GetLatestBookedEvent(ctx context.Context, conn DbConn, pilotDbId string) (EventBooking, Event, error) {
	b := EventBooking{}
	e := Event{}
	err := conn.QueryRow(ctx, `
		SELECT
			 eb.id::text
			,eb.pilot_id::text
			,eb.event_id::text
			,eb.status
			,eb.booked_at
			,e.title
			,e.is_active
			,e.airports
			,e.start_time
			,e.end_time
		FROM event_booking eb
		INNER JOIN event e ON e.id = eb.event_id
		WHERE eb.pilot_id = $1::uuid AND eb.status = 'booked'
		ORDER BY eb.booked_at DESC
		LIMIT 1;
		`,
		pilotDbId,
	).Scan(&b.Id, &b.PilotDbId, &b.EventId, &b.Status, &b.BookedAt,
		&e.Title, &e.IsActive, &e.Airports, &e.StartTime, &e.EndTime)
	if err != nil {
		return EventBooking{}, Event{}, err
	}
	e.Id = b.EventId

	return b, e, nil
}

func MarkEventBookingAttended(ctx context.Context, conn DbConn, bookingId string, flightId string, status string) error {
	_, err := conn.Exec(ctx, `
		UPDATE event_booking
		SET status = $2, flight_id = $3::uuid, attended_at = timezone('utc', NOW())
		WHERE id = $1::uuid;
		`,
		bookingId,
		status,
		flightId,
	)

	return err
}

// CountPilotFlightsOn reports how many accepted flights the pilot already has
// on the given day; used for the first-flight-of-the-day multiplier.
func CountPilotFlightsOn(ctx context.Context, conn DbConn, pilotDbId string, day time.Time) (int, error) {
	var count int
	err := conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM flight
		WHERE pilot_id = $1::uuid
			AND approved_status = 1
			AND submitted_at::date = $2::date;
		`,
		pilotDbId,
		day,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
