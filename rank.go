package skyops

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// EligibleRank picks the highest auto-promote rank the pilot qualifies for
// that outranks their current one. Transfer hours count toward the hour
// requirement. Returns ok=false when no upgrade applies.
func EligibleRank(ranks []Rank, currentRank string, totalHours float64, totalFlights int) (Rank, bool) {
	currentOrder := -1
	for _, r := range ranks {
		if r.Name == currentRank {
			currentOrder = r.RankOrder
		}
	}

	var best Rank
	found := false
	for _, r := range ranks {
		if !r.AutoPromote {
			continue
		}
		if totalHours < r.RequirementHours || totalFlights < r.RequirementFlights {
			continue
		}
		if r.RankOrder <= currentOrder {
			continue
		}
		if !found || r.RankOrder > best.RankOrder {
			best = r
			found = true
		}
	}

	return best, found
}

// CheckAndUpgradeRank recomputes the pilot's rank from the refreshed totals
// and persists an upgrade when one applies. Returns the new rank name, or ""
// when unchanged.
func CheckAndUpgradeRank(ctx context.Context, conn DbConn, pilotDbId string) (string, error) {
	pilot, err := GetPilot(ctx, conn, pilotDbId)
	if err != nil {
		// GetPilot matches on pilot_id or email; fall back to the db id.
		pilot, err = getPilotByDbId(ctx, conn, pilotDbId)
		if err != nil {
			return "", fmt.Errorf("unable to reload pilot for rank check: %w", err)
		}
	}

	ranks, err := GetRanks(ctx, conn)
	if err != nil {
		return "", fmt.Errorf("unable to load rank table: %w", err)
	}
	if len(ranks) == 0 {
		return "", nil
	}

	next, ok := EligibleRank(ranks, pilot.Rank, pilot.TotalHours+pilot.TransferHours, pilot.TotalFlights)
	if !ok {
		return "", nil
	}

	logrus.WithFields(logrus.Fields{
		"pilot": pilot.PilotId,
		"from":  pilot.Rank,
		"to":    next.Name,
	}).Info("upgrading pilot rank")

	if err := UpdatePilotRank(ctx, conn, pilot.Id, next.Name); err != nil {
		return "", fmt.Errorf("unable to persist rank upgrade: %w", err)
	}

	return next.Name, nil
}

func getPilotByDbId(ctx context.Context, conn DbConn, id string) (Pilot, error) {
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
		WHERE id = $1::uuid
		LIMIT 1;
		`,
		id,
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

// AwardValue resolves which pilot total an automated award predicate reads.
func AwardValue(award Award, pilot Pilot) float64 {
	switch award.Category {
	case AwardCategoryHours:
		return pilot.TotalHours
	case AwardCategoryFlights:
		return float64(pilot.TotalFlights)
	case AwardCategoryLandings:
		// Landings track flights until they are counted separately.
		return float64(pilot.TotalFlights)
	default:
		return 0
	}
}

// CheckAndGrantAwards evaluates every active automated award against the
// refreshed pilot totals and grants the ones not already held. Returns the
// names of newly granted awards.
func CheckAndGrantAwards(ctx context.Context, conn DbConn, pilotDbId string) ([]string, error) {
	pilot, err := getPilotByDbId(ctx, conn, pilotDbId)
	if err != nil {
		return nil, fmt.Errorf("unable to reload pilot for award check: %w", err)
	}

	awards, err := GetAutomatedAwards(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("unable to load automated awards: %w", err)
	}

	var granted []string
	for _, award := range awards {
		if award.RequiredValue <= 0 || AwardValue(award, pilot) < award.RequiredValue {
			continue
		}

		held, err := HasPilotAward(ctx, conn, pilot.Id, award.Id)
		if err != nil {
			return granted, err
		}
		if held {
			continue
		}

		if err := GrantPilotAward(ctx, conn, pilot.Id, award.Id); err != nil {
			return granted, err
		}

		logrus.WithFields(logrus.Fields{
			"pilot": pilot.PilotId,
			"award": award.Name,
		}).Info("award granted")
		granted = append(granted, award.Name)
	}

	return granted, nil
}
