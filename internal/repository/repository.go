package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/repository/db"
)

// ErrFaultNotFound is returned when resolving a fault id that does not exist.
var ErrFaultNotFound = errors.New("fault not found")

// ReadingQuery filters and paginates reading listings (timestamp DESC).
type ReadingQuery struct {
	From   time.Time // inclusive; zero means no lower bound
	To     time.Time // inclusive; zero means no upper bound
	Limit  int       // <= 0 means no limit
	Offset int
}

// FaultQuery filters fault-log listings (timestamp DESC).
type FaultQuery struct {
	Resolved *bool  // nil means no filter
	Severity string // "" means no filter
	Limit    int    // <= 0 means no limit
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// ReadingRepo is the append-only record store for sensor readings.
// Append must persist the reading and its fault events as a single
// transaction; a partial write is never visible to readers.
type ReadingRepo interface {
	Append(ctx context.Context, r models.SensorReading, events []models.FaultLog) (int64, error)
	Latest(ctx context.Context) (*models.SensorReading, error)
	List(ctx context.Context, q ReadingQuery) ([]models.SensorReading, error)
}

type FaultRepo interface {
	List(ctx context.Context, q FaultQuery) ([]models.FaultLog, error)
	Resolve(ctx context.Context, id string, at time.Time) error
}

type Repository struct {
	Readings ReadingRepo
	Faults   FaultRepo
	Auth     Authorization
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Readings: NewReadingSQLite(sqlDB),
		Faults:   NewFaultSQLite(sqlDB),
		Auth:     NewUserRepository(sqlDB),
	}
}

// InitDB opens the SQLite store; forwarded so callers wire through this package.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
