package models

import "time"

// ParsedReading holds the typed fields decoded from one raw telemetry string.
// FaultDetected is the fault bit as declared by the sensor unit; the stored
// reading may carry a stronger value after classification.
type ParsedReading struct {
	IRDetection      int     `json:"ir_detection"`    // 0 or 1
	VibrationRaw     int     `json:"vibration_raw"`   // raw ADC value
	DistanceAdjusted float64 `json:"distance_adjusted"` // cm
	AccelerationX    float64 `json:"acceleration_x"`
	AccelerationY    float64 `json:"acceleration_y"`
	AccelerationZ    float64 `json:"acceleration_z"`
	FaultDetected    int     `json:"fault_detected"` // 0 or 1, as declared on the wire
}

// FaultFlags are the per-category results of threshold classification.
type FaultFlags struct {
	Vibration    bool `json:"vibration_fault"`
	Distance     bool `json:"distance_fault"`
	IR           bool `json:"ir_fault"`
	Acceleration bool `json:"acceleration_fault"`
}

// Any reports whether at least one category flag is set.
func (f FaultFlags) Any() bool {
	return f.Vibration || f.Distance || f.IR || f.Acceleration
}

// SensorReading is one persisted reading: decoded fields, classification
// flags, the merged overall fault bit and the original raw string kept for
// audit. Immutable once stored.
type SensorReading struct {
	ID               int64     `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	IRDetection      int       `json:"ir_detection"`
	VibrationRaw     int       `json:"vibration_raw"`
	VibrationFault   bool      `json:"vibration_fault"`
	DistanceAdjusted float64   `json:"distance_adjusted"`
	DistanceFault    bool      `json:"distance_fault"`
	AccelerationX    float64   `json:"acceleration_x"`
	AccelerationY    float64   `json:"acceleration_y"`
	AccelerationZ    float64   `json:"acceleration_z"`
	IRFault          bool      `json:"ir_fault"`
	AccelerationFault bool     `json:"acceleration_fault"`
	FaultDetected    bool      `json:"fault_detected"` // declared bit OR any classifier flag
	RawSensorData    string    `json:"raw_sensor_data"`
}
