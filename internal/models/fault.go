package models

import "time"

// Fault categories.
const (
	FaultTypeVibration    = "vibration"
	FaultTypeDistance     = "distance"
	FaultTypeIR           = "ir"
	FaultTypeAcceleration = "acceleration"
)

// Severities.
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// FaultLog is one categorized fault event tied to a single reading.
// Severity is fixed at creation time and never recomputed.
type FaultLog struct {
	ID          string     `json:"id"`
	Timestamp   time.Time  `json:"timestamp"`
	FaultType   string     `json:"fault_type"` // vibration | distance | ir | acceleration
	Severity    string     `json:"severity"`   // minor | major | critical
	Description string     `json:"description"`
	ReadingID   int64      `json:"sensor_reading_id"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
