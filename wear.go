package skyops

import (
	"fmt"
	"math"
	"time"
)

const (
	// Base wear applied to the airframe on every settled flight.
	baseWearPercent = 0.5

	// Landing rates below this trigger the repair-timer path.
	severeLandingRate = -600.0

	maintenanceHealthThreshold = 40.0
	damageLogCap               = 50
)

// WearInput captures the landing severity signals the wear model reads.
type WearInput struct {
	LandingRate float64
	GForce      float64
	// Explicit damage reported by the client overrides the derived model.
	ReportedDamage float64
}

// DamageDelta computes the condition loss for one landing. Explicit reported
// damage takes precedence; otherwise wear derives from landing rate beyond
// 400 fpm and G-force beyond 1.8.
func DamageDelta(in WearInput) float64 {
	if in.ReportedDamage > 0 {
		return in.ReportedDamage
	}

	damage := baseWearPercent
	if in.LandingRate < -400 {
		damage += (math.Abs(in.LandingRate) - 400) * 0.1
	}
	if g := math.Abs(in.GForce); g > 1.8 {
		damage += (g - 1.8) * 10
	}
	return damage
}

func classifyDamage(damage float64) string {
	switch {
	case damage >= 50:
		return DamageSevere
	case damage >= 5:
		return DamageHardLanding
	default:
		return DamageWear
	}
}

// ResolveAircraftStatus derives status purely from condition against the
// configured thresholds.
func ResolveAircraftStatus(condition float64, groundedThreshold float64) AircraftStatus {
	switch {
	case condition < groundedThreshold:
		return AircraftGrounded
	case condition < maintenanceHealthThreshold:
		return AircraftMaintenance
	default:
		return AircraftAvailable
	}
}

// ApplyWear mutates the aircraft in place with the landing damage: condition
// clamp, status recompute, rolling damage log, flight counters and the
// location move. Returns the damage applied.
func ApplyWear(a *FleetAircraft, cfg Config, in WearInput, arrivalIcao string, flightMinutes float64, flightId string, callsign string) float64 {
	damage := DamageDelta(in)

	a.CurrentLocation = arrivalIcao
	a.Condition = math.Round((a.Condition-damage)*100) / 100
	if a.Condition < 0 {
		a.Condition = 0
	}
	if a.Condition > 100 {
		a.Condition = 100
	}
	a.TotalHours += flightMinutes / 60
	a.FlightCount++

	if damage > baseWearPercent {
		a.DamageLog = append(a.DamageLog, DamageEvent{
			Type:      classifyDamage(damage),
			Amount:    math.Round(damage*100) / 100,
			Timestamp: time.Now().UTC(),
			FlightId:  flightId,
		})
		if len(a.DamageLog) > damageLogCap {
			a.DamageLog = a.DamageLog[len(a.DamageLog)-damageLogCap:]
		}
	}

	a.Status = ResolveAircraftStatus(a.Condition, cfg.GroundedHealthThreshold)
	if a.Status == AircraftGrounded {
		a.GroundedReason = fmt.Sprintf("Health dropped to %.1f%% after flight %s", a.Condition, callsign)
	}

	return damage
}

// ScheduleRepair puts the aircraft under a repair timer after a severe hard
// landing and records who broke it. Overrides whatever status ApplyWear
// resolved.
func ScheduleRepair(a *FleetAircraft, cfg Config, landingRate float64, pilotId string, flightId string, now time.Time) {
	damagePercent := math.Abs(landingRate+400) * 0.05
	hoursPerPercent := cfg.RepairHoursPerPercent
	if hoursPerPercent <= 0 {
		hoursPerPercent = 2
	}
	repairHours := math.Ceil(damagePercent * hoursPerPercent)
	repairUntil := now.Add(time.Duration(repairHours) * time.Hour)

	a.Status = AircraftMaintenance
	a.RepairUntil = repairUntil
	a.DamagedAt = now
	a.DamagedByPilot = pilotId
	a.DamagedByFlight = flightId
	a.GroundedReason = fmt.Sprintf("Hard landing %.0f fpm - under repair until %s", landingRate, repairUntil.UTC().Format("2006-01-02T15:04Z"))
}
