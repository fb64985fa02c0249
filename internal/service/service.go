package service

import (
	"context"
	"time"

	"itms_backend/internal/logger"
	"itms_backend/internal/models"
	"itms_backend/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Ingest runs the telemetry decode → classify → store pipeline.
type Ingest interface {
	Ingest(ctx context.Context, raw, tsStr string) (models.SensorReading, []models.FaultLog, error)
}

// Readings exposes read-only access to stored sensor readings.
type Readings interface {
	Latest(ctx context.Context) (*models.SensorReading, error)
	List(ctx context.Context, f ReadingFilter) ([]models.SensorReading, error)
}

// Faults exposes the fault log with filtering and resolution.
type Faults interface {
	List(ctx context.Context, f FaultFilter) ([]models.FaultLog, error)
	Resolve(ctx context.Context, id string) error
}

// Stats computes the aggregated dashboard views.
type Stats interface {
	Stats(ctx context.Context) (models.SensorStats, error)
	Dashboard(ctx context.Context) (models.DashboardData, error)
}

// Export renders recent readings for download.
type Export interface {
	CSV(ctx context.Context) (filename, data string, err error)
	XLSX(ctx context.Context) (filename string, data []byte, err error)
}

// Simulator runs the background loop that posts synthetic telemetry.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Ingest
	Readings
	Faults
	Stats
	Export
	Simulator
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, log *logger.Logger, signingKey string) *Service {
	ingest := NewIngestService(repos.Readings, log)
	return &Service{
		Ingest:        ingest,
		Readings:      NewReadingsService(repos.Readings),
		Faults:        NewFaultsService(repos.Faults),
		Stats:         NewStatsService(repos.Readings, repos.Faults),
		Export:        NewExportService(repos.Readings),
		Simulator:     NewSimulatorService(ingest, log),
		Authorization: NewAuthService(repos.Auth, signingKey),
	}
}
