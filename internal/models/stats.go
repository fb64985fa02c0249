package models

import "time"

// Connection liveness, derived from the age of the most recent reading.
const (
	ConnectionConnected    = "connected"
	ConnectionWarning      = "warning"
	ConnectionDisconnected = "disconnected"
	ConnectionNoData       = "no_data"
)

// SensorStats are the aggregated dashboard statistics.
type SensorStats struct {
	TotalReadings     int        `json:"total_readings"`
	TotalFaults       int        `json:"total_faults"`
	FaultRate         float64    `json:"fault_rate"` // percent, 2 decimals
	AvgVibration      float64    `json:"avg_vibration"`
	AvgDistance       float64    `json:"avg_distance"`
	LastReadingTime   *time.Time `json:"last_reading_time,omitempty"`
	IRDetectionsToday int        `json:"ir_detections_today"`
	ActiveFaults      int        `json:"active_faults"`
}

// DashboardData is the single payload consumed by the dashboard frontend.
type DashboardData struct {
	LatestReading    *SensorReading  `json:"latest_reading,omitempty"`
	RecentReadings   []SensorReading `json:"recent_readings"`
	RecentFaults     []FaultLog      `json:"recent_faults"`
	Stats            SensorStats     `json:"stats"`
	ConnectionStatus string          `json:"connection_status"`
}
