package service

import (
	"fmt"
	"math"

	"itms_backend/internal/models"

	"github.com/google/uuid"
)

// Thresholds hold the fault classification limits. They are fixed for the
// deployment; a struct (rather than literals inside the rules) so boundary
// values can be exercised in tests without code edits.
type Thresholds struct {
	VibrationMin      int     // inclusive lower bound of the faulty band
	VibrationMax      int     // inclusive upper bound of the faulty band
	DistanceMinCM     float64 // below this is too close
	DistanceMaxCM     float64 // above this is too far
	AccelerationLimit float64 // per-axis absolute limit
}

// DefaultThresholds returns the deployed sensor limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VibrationMin:      400,
		VibrationMax:      450,
		DistanceMinCM:     5.0,
		DistanceMaxCM:     50.0,
		AccelerationLimit: 1000,
	}
}

// Classifier applies fixed thresholds to decoded readings.
type Classifier struct {
	cfg Thresholds
}

func NewClassifier(cfg Thresholds) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify evaluates each category rule independently; it never fails.
// Distance bounds are inclusive-safe: exactly 5.0 or 50.0 is not a fault.
func (c *Classifier) Classify(r models.ParsedReading) models.FaultFlags {
	return models.FaultFlags{
		Vibration: r.VibrationRaw >= c.cfg.VibrationMin && r.VibrationRaw <= c.cfg.VibrationMax,
		Distance:  r.DistanceAdjusted < c.cfg.DistanceMinCM || r.DistanceAdjusted > c.cfg.DistanceMaxCM,
		IR:        r.IRDetection == 1,
		Acceleration: math.Abs(r.AccelerationX) > c.cfg.AccelerationLimit ||
			math.Abs(r.AccelerationY) > c.cfg.AccelerationLimit ||
			math.Abs(r.AccelerationZ) > c.cfg.AccelerationLimit,
	}
}

// severityByType is the static category → severity mapping. Severity is
// assigned once at event creation and never recomputed.
var severityByType = map[string]string{
	models.FaultTypeVibration:    models.SeverityMajor,
	models.FaultTypeDistance:     models.SeverityMinor,
	models.FaultTypeIR:           models.SeverityCritical,
	models.FaultTypeAcceleration: models.SeverityMajor,
}

// BuildFaultEvents turns classification flags into fault events, one per
// triggered category, in fixed order: vibration, distance, ir, acceleration.
// Pure with respect to persistence; reading id and timestamps are assigned
// when the events are stored.
func BuildFaultEvents(r models.ParsedReading, flags models.FaultFlags) []models.FaultLog {
	var events []models.FaultLog
	if flags.Vibration {
		events = append(events, newFaultEvent(models.FaultTypeVibration,
			fmt.Sprintf("Vibration threshold exceeded: %d", r.VibrationRaw)))
	}
	if flags.Distance {
		events = append(events, newFaultEvent(models.FaultTypeDistance,
			fmt.Sprintf("Distance out of range: %vcm", r.DistanceAdjusted)))
	}
	if flags.IR {
		events = append(events, newFaultEvent(models.FaultTypeIR, "Track obstruction detected"))
	}
	if flags.Acceleration {
		events = append(events, newFaultEvent(models.FaultTypeAcceleration, "Unusual acceleration detected"))
	}
	return events
}

func newFaultEvent(faultType, description string) models.FaultLog {
	return models.FaultLog{
		ID:          uuid.NewString(),
		FaultType:   faultType,
		Severity:    severityByType[faultType],
		Description: description,
	}
}
