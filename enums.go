package skyops

// ApprovedStatus is the moderation state of a persisted flight record.
// Records are never mutated after creation; the status distinguishes
// accepted from rejected submissions.
type ApprovedStatus int

const (
	StatusPending ApprovedStatus = iota
	StatusAccepted
	StatusRejected
)

func (s ApprovedStatus) String() string {
	return [...]string{"Pending", "Accepted", "Rejected"}[s]
}

// AircraftStatus is a pure function of condition and the repair timer, see
// ResolveAircraftStatus in wear.go.
type AircraftStatus string

const (
	AircraftAvailable   AircraftStatus = "Available"
	AircraftMaintenance AircraftStatus = "Maintenance"
	AircraftGrounded    AircraftStatus = "Grounded"
)

type BidStatus string

const (
	BidActive     BidStatus = "Active"
	BidInProgress BidStatus = "InProgress"
	BidExpired    BidStatus = "Expired"
	BidCancelled  BidStatus = "Cancelled"
)

type TourStatus string

const (
	TourInProgress TourStatus = "In Progress"
	TourCompleted  TourStatus = "Completed"
)

// Damage log classification, keyed off the size of a single damage event.
const (
	DamageWear        = "WEAR"
	DamageHardLanding = "HARD_LANDING"
	DamageSevere      = "SEVERE"
)

// Award categories evaluated automatically after every settlement.
const (
	AwardCategoryHours    = "Flight Hours"
	AwardCategoryFlights  = "Flights"
	AwardCategoryLandings = "Landings"
)
