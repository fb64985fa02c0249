package service

import (
	"context"
	"math"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/repository"
)

// Connection liveness ladder, driven purely by the latest reading's age.
const (
	connWarningAfter      = 5 * time.Second
	connDisconnectedAfter = 10 * time.Second
)

// Dashboard list sizes.
const (
	recentReadingsLimit = 20
	recentFaultsLimit   = 10
)

// StatsService computes dashboard aggregates from store snapshots.
type StatsService struct {
	readings repository.ReadingRepo
	faults   repository.FaultRepo
}

func NewStatsService(readings repository.ReadingRepo, faults repository.FaultRepo) *StatsService {
	return &StatsService{readings: readings, faults: faults}
}

// Stats returns aggregated statistics over everything currently stored.
func (s *StatsService) Stats(ctx context.Context) (models.SensorStats, error) {
	readings, err := s.readings.List(ctx, repository.ReadingQuery{})
	if err != nil {
		return models.SensorStats{}, err
	}
	faults, err := s.faults.List(ctx, repository.FaultQuery{})
	if err != nil {
		return models.SensorStats{}, err
	}
	return ComputeStats(readings, faults, time.Now().UTC()), nil
}

// Dashboard assembles the complete dashboard payload from one snapshot:
// latest reading, recent readings/faults, stats and connection status.
func (s *StatsService) Dashboard(ctx context.Context) (models.DashboardData, error) {
	readings, err := s.readings.List(ctx, repository.ReadingQuery{})
	if err != nil {
		return models.DashboardData{}, err
	}
	faults, err := s.faults.List(ctx, repository.FaultQuery{})
	if err != nil {
		return models.DashboardData{}, err
	}

	now := time.Now().UTC()
	data := models.DashboardData{
		RecentReadings: firstN(readings, recentReadingsLimit),
		RecentFaults:   firstN(faults, recentFaultsLimit),
		Stats:          ComputeStats(readings, faults, now),
	}
	if len(readings) > 0 { // readings come back timestamp DESC
		data.LatestReading = &readings[0]
	}
	data.ConnectionStatus = ConnectionState(data.LatestReading, now)
	return data, nil
}

// ComputeStats derives dashboard statistics from a snapshot of the store.
// Pure: identical inputs always yield identical stats.
func ComputeStats(readings []models.SensorReading, faults []models.FaultLog, now time.Time) models.SensorStats {
	stats := models.SensorStats{
		TotalReadings: len(readings),
		TotalFaults:   len(faults),
	}

	if len(readings) > 0 {
		stats.FaultRate = round2(float64(len(faults)) / float64(len(readings)) * 100)

		var vibSum, distSum float64
		latest := readings[0].Timestamp
		todayY, todayM, todayD := now.UTC().Date()
		for _, r := range readings {
			vibSum += float64(r.VibrationRaw)
			distSum += r.DistanceAdjusted
			if r.Timestamp.After(latest) {
				latest = r.Timestamp
			}
			y, m, d := r.Timestamp.UTC().Date()
			if y == todayY && m == todayM && d == todayD && r.IRDetection == 1 {
				stats.IRDetectionsToday++
			}
		}
		stats.AvgVibration = round2(vibSum / float64(len(readings)))
		stats.AvgDistance = round2(distSum / float64(len(readings)))

		t := latest.UTC()
		stats.LastReadingTime = &t
	}

	for _, f := range faults {
		if !f.Resolved {
			stats.ActiveFaults++
		}
	}
	return stats
}

// ConnectionState derives liveness purely from the latest reading's age.
// Stateless: no transition history, no hysteresis.
func ConnectionState(latest *models.SensorReading, now time.Time) string {
	if latest == nil {
		return models.ConnectionNoData
	}
	age := now.Sub(latest.Timestamp)
	switch {
	case age > connDisconnectedAfter:
		return models.ConnectionDisconnected
	case age > connWarningAfter:
		return models.ConnectionWarning
	default:
		return models.ConnectionConnected
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
