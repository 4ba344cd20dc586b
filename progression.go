package skyops

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
)

// FlownLeg is the settled flight reduced to what progression matching needs.
type FlownLeg struct {
	DepartureIcao string
	ArrivalIcao   string
	AircraftType  string
}

// MatchTourLeg reports whether the flown leg satisfies the tour's next
// unflown leg. Tours are strictly ordered: only the leg at the current index
// can match.
func MatchTourLeg(tour Tour, progress TourProgress, flown FlownLeg) bool {
	if progress.CurrentLegIndex >= len(tour.Legs) {
		return false
	}

	next := tour.Legs[progress.CurrentLegIndex]
	if next.DepartureIcao != flown.DepartureIcao || next.ArrivalIcao != flown.ArrivalIcao {
		return false
	}

	return aircraftAllowed(next.AircraftTypes, flown.AircraftType)
}

// MatchActivityLeg finds the first leg of the activity the flown flight
// satisfies that is not already recorded as complete. Legs with empty
// departure or arrival act as wildcards. Returns the leg id and whether one
// matched; a leg already in completedLegIds never matches again, which is
// what keeps duplicate submissions from double-crediting.
func MatchActivityLeg(activity Activity, completedLegIds []string, flown FlownLeg) (string, bool) {
	done := make(map[string]bool, len(completedLegIds))
	for _, id := range completedLegIds {
		done[id] = true
	}

	for _, leg := range activity.Legs {
		routeMatch := (leg.DepartureIcao == "" || leg.DepartureIcao == flown.DepartureIcao) &&
			(leg.ArrivalIcao == "" || leg.ArrivalIcao == flown.ArrivalIcao)
		if !routeMatch || !aircraftAllowed(leg.AircraftTypes, flown.AircraftType) {
			continue
		}
		if done[leg.Id] {
			continue
		}
		return leg.Id, true
	}

	return "", false
}

func aircraftAllowed(allowed []string, aircraftType string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, t := range allowed {
		if t == aircraftType {
			return true
		}
	}
	return false
}

// FleetTypeViolation blocks award grants for legs flown on disallowed
// equipment; currently any A380 variant.
func FleetTypeViolation(aircraftType string) bool {
	normalized := strings.ToUpper(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(aircraftType))
	return strings.Contains(normalized, "A380") ||
		strings.Contains(normalized, "A388") ||
		strings.Contains(normalized, "380")
}

// AdvanceActivity progresses a booked activity after settlement. Non-fatal:
// the returned message fragment is empty when nothing matched.
func AdvanceActivity(ctx context.Context, conn DbConn, pilot Pilot, activityId string, flown FlownLeg, now time.Time) (string, error) {
	activity, err := GetActivity(ctx, conn, activityId)
	if err != nil {
		return "", fmt.Errorf("unable to load activity %s: %w", activityId, err)
	}
	if !activity.Active {
		return "", nil
	}

	progress, err := GetOrCreateActivityProgress(ctx, conn, pilot.Id, activityId)
	if err != nil {
		return "", fmt.Errorf("unable to load activity progress: %w", err)
	}

	legId, ok := MatchActivityLeg(activity, progress.CompletedLegIds, flown)
	if !ok {
		return "", nil
	}

	progress.CompletedLegIds = append(progress.CompletedLegIds, legId)
	progress.LegsComplete = len(progress.CompletedLegIds)
	progress.PercentComplete = int(math.Round(float64(progress.LegsComplete) / float64(len(activity.Legs)) * 100))
	progress.LastLegFlownDate = now

	message := ""
	if progress.LegsComplete >= len(activity.Legs) {
		progress.DateComplete = now
		progress.DaysToComplete = int(math.Ceil(now.Sub(progress.StartDate).Hours() / 24))
		if activity.RewardPoints > 0 {
			if err := AddPilotCredits(ctx, conn, pilot.Id, activity.RewardPoints); err != nil {
				return "", fmt.Errorf("unable to pay activity reward: %w", err)
			}
			message = fmt.Sprintf(" ACTIVITY COMPLETED: %s! Bonus %d credits!", activity.Title, activity.RewardPoints)
		} else {
			message = fmt.Sprintf(" ACTIVITY COMPLETED: %s!", activity.Title)
		}
	} else {
		message = fmt.Sprintf(" Activity Leg %d of %d Completed! (%s)", progress.LegsComplete, len(activity.Legs), activity.Title)
	}

	if err := SaveActivityProgress(ctx, conn, progress); err != nil {
		return "", fmt.Errorf("unable to save activity progress: %w", err)
	}

	return message, nil
}

// AdvanceTours walks every in-progress tour of the pilot, advances those
// whose next leg matches the flown flight, pays completion rewards and
// attempts the linked award grant. Award failures are logged and swallowed.
func AdvanceTours(ctx context.Context, conn DbConn, pilot Pilot, flown FlownLeg, now time.Time) (string, error) {
	active, err := GetInProgressTours(ctx, conn, pilot.Id)
	if err != nil {
		return "", fmt.Errorf("unable to load tour progress: %w", err)
	}

	message := ""
	for _, progress := range active {
		tour, err := GetTour(ctx, conn, progress.TourId)
		if err != nil || !tour.IsActive {
			continue
		}
		if !MatchTourLeg(tour, progress, flown) {
			continue
		}

		progress.CompletedLegs = append(progress.CompletedLegs, now)
		progress.CurrentLegIndex++

		if progress.CurrentLegIndex >= len(tour.Legs) {
			progress.Status = TourCompleted
			progress.CompletedAt = now
			if tour.RewardCredits > 0 {
				if err := AddPilotCredits(ctx, conn, pilot.Id, tour.RewardCredits); err != nil {
					return message, fmt.Errorf("unable to pay tour reward: %w", err)
				}
				message += fmt.Sprintf(" TOUR COMPLETED: %s! Bonus %d credits!", tour.Name, tour.RewardCredits)
			} else {
				message += fmt.Sprintf(" TOUR COMPLETED: %s!", tour.Name)
			}

			awardMessage, err := grantTourAward(ctx, conn, pilot, tour, flown.AircraftType)
			if err != nil {
				logrus.WithError(err).WithField("tour", tour.Name).Error("tour award grant failed")
			} else {
				message += awardMessage
			}
		} else {
			message += fmt.Sprintf(" Tour Leg %d Completed! (%s)", progress.CurrentLegIndex, tour.Name)
		}

		if err := SaveTourProgress(ctx, conn, progress); err != nil {
			return message, fmt.Errorf("unable to save tour progress: %w", err)
		}
	}

	return message, nil
}

func grantTourAward(ctx context.Context, conn DbConn, pilot Pilot, tour Tour, aircraftType string) (string, error) {
	award, err := GetAwardByLinkedTour(ctx, conn, tour.Id)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if FleetTypeViolation(aircraftType) {
		return " Fleet violation (A380): award not granted.", nil
	}

	held, err := HasPilotAward(ctx, conn, pilot.Id, award.Id)
	if err != nil {
		return "", err
	}
	if held {
		return "", nil
	}

	if err := GrantPilotAward(ctx, conn, pilot.Id, award.Id); err != nil {
		return "", err
	}

	return fmt.Sprintf(" AWARD UNLOCKED: %s!", award.Name), nil
}
