package skyops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTour() Tour {
	return Tour{
		Id:       "tour-1",
		Name:     "Levant Explorer",
		IsActive: true,
		Legs: []TourLeg{
			{DepartureIcao: "OJAI", ArrivalIcao: "ORBI"},
			{DepartureIcao: "ORBI", ArrivalIcao: "OSDI"},
			{DepartureIcao: "OSDI", ArrivalIcao: "OJAI", AircraftTypes: []string{"A320", "A321"}},
		},
	}
}

func TestMatchTourLegIsOrdered(t *testing.T) {
	tour := sampleTour()
	progress := TourProgress{CurrentLegIndex: 0}

	// Flying leg 2 while leg 1 is next does not advance.
	assert.False(t, MatchTourLeg(tour, progress, FlownLeg{DepartureIcao: "ORBI", ArrivalIcao: "OSDI"}))
	assert.True(t, MatchTourLeg(tour, progress, FlownLeg{DepartureIcao: "OJAI", ArrivalIcao: "ORBI"}))

	progress.CurrentLegIndex = 1
	assert.True(t, MatchTourLeg(tour, progress, FlownLeg{DepartureIcao: "ORBI", ArrivalIcao: "OSDI"}))
}

func TestMatchTourLegAircraftRestriction(t *testing.T) {
	tour := sampleTour()
	progress := TourProgress{CurrentLegIndex: 2}

	leg := FlownLeg{DepartureIcao: "OSDI", ArrivalIcao: "OJAI", AircraftType: "B738"}
	assert.False(t, MatchTourLeg(tour, progress, leg))

	leg.AircraftType = "A320"
	assert.True(t, MatchTourLeg(tour, progress, leg))
}

func TestMatchTourLegBeyondEnd(t *testing.T) {
	tour := sampleTour()
	progress := TourProgress{CurrentLegIndex: 3}
	assert.False(t, MatchTourLeg(tour, progress, FlownLeg{DepartureIcao: "OJAI", ArrivalIcao: "ORBI"}))
}

func TestMatchActivityLegIdempotent(t *testing.T) {
	activity := Activity{
		Id:     "act-1",
		Active: true,
		Legs: []ActivityLeg{
			{Id: "leg-a", DepartureIcao: "OJAI", ArrivalIcao: "OMDB"},
			{Id: "leg-b", DepartureIcao: "OMDB", ArrivalIcao: "OJAI"},
		},
	}
	flown := FlownLeg{DepartureIcao: "OJAI", ArrivalIcao: "OMDB", AircraftType: "A320"}

	legId, ok := MatchActivityLeg(activity, nil, flown)
	assert.True(t, ok)
	assert.Equal(t, "leg-a", legId)

	// Replaying the same leg finds nothing new.
	_, ok = MatchActivityLeg(activity, []string{"leg-a"}, flown)
	assert.False(t, ok)
}

func TestMatchActivityLegWildcards(t *testing.T) {
	activity := Activity{
		Legs: []ActivityLeg{
			{Id: "leg-any-arrival", DepartureIcao: "OERK"},
			{Id: "leg-any", AircraftTypes: []string{"DH8D"}},
		},
	}

	legId, ok := MatchActivityLeg(activity, nil, FlownLeg{DepartureIcao: "OERK", ArrivalIcao: "OTHH", AircraftType: "A320"})
	assert.True(t, ok)
	assert.Equal(t, "leg-any-arrival", legId)

	legId, ok = MatchActivityLeg(activity, nil, FlownLeg{DepartureIcao: "OMDB", ArrivalIcao: "OTHH", AircraftType: "DH8D"})
	assert.True(t, ok)
	assert.Equal(t, "leg-any", legId)

	_, ok = MatchActivityLeg(activity, nil, FlownLeg{DepartureIcao: "OMDB", ArrivalIcao: "OTHH", AircraftType: "A320"})
	assert.False(t, ok)
}

func TestFleetTypeViolation(t *testing.T) {
	for _, typ := range []string{"A380", "a380-800", "Airbus A 380", "A388", "380"} {
		assert.True(t, FleetTypeViolation(typ), typ)
	}
	for _, typ := range []string{"A320", "B748", "MD-11"} {
		assert.False(t, FleetTypeViolation(typ), typ)
	}
}
