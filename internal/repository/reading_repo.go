package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"itms_backend/internal/models"

	"github.com/google/uuid"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite { return &ReadingSQLite{db: db} }

// Ensure implementation of ReadingRepo interface at compile time.
var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	insertReadingSQL = `
		INSERT INTO sensor_readings (
			timestamp, ir_detection, vibration_raw, vibration_fault,
			distance_adjusted, distance_fault,
			acceleration_x, acceleration_y, acceleration_z,
			ir_fault, acceleration_fault, fault_detected, raw_sensor_data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	insertFaultLogSQL = `
		INSERT INTO fault_logs (id, timestamp, fault_type, severity, description, sensor_reading_id, resolved, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectReadingColumns = `
		id, timestamp, ir_detection, vibration_raw, vibration_fault,
		distance_adjusted, distance_fault,
		acceleration_x, acceleration_y, acceleration_z,
		ir_fault, acceleration_fault, fault_detected, raw_sensor_data
	`
)

// Append inserts the reading together with its fault events in one
// transaction. Event IDs and timestamps are filled in when empty.
func (r *ReadingSQLite) Append(ctx context.Context, reading models.SensorReading, events []models.FaultLog) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin ingest transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit
		_ = tx.Rollback()
	}()

	ts := reading.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	res, err := tx.ExecContext(ctx, insertReadingSQL,
		ts,
		reading.IRDetection,
		reading.VibrationRaw,
		reading.VibrationFault,
		reading.DistanceAdjusted,
		reading.DistanceFault,
		reading.AccelerationX,
		reading.AccelerationY,
		reading.AccelerationZ,
		reading.IRFault,
		reading.AccelerationFault,
		reading.FaultDetected,
		reading.RawSensorData,
	)
	if err != nil {
		return 0, fmt.Errorf("insert sensor reading: %w", err)
	}
	readingID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get reading insert id: %w", err)
	}

	for i := range events {
		e := events[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = ts
		} else {
			e.Timestamp = e.Timestamp.UTC()
		}
		if _, err := tx.ExecContext(ctx, insertFaultLogSQL,
			e.ID,
			e.Timestamp,
			e.FaultType,
			e.Severity,
			e.Description,
			readingID,
			e.Resolved,
			e.ResolvedAt,
		); err != nil {
			return 0, fmt.Errorf("insert fault log %q: %w", e.FaultType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit ingest transaction: %w", err)
	}
	return readingID, nil
}

// Latest returns the most recent reading by timestamp, or (nil, nil) if the
// store is empty.
func (r *ReadingSQLite) Latest(ctx context.Context) (*models.SensorReading, error) {
	q := `SELECT ` + selectReadingColumns + ` FROM sensor_readings ORDER BY timestamp DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, q)

	reading, err := scanReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

// List returns readings ordered timestamp DESC with optional time range and
// pagination.
func (r *ReadingSQLite) List(ctx context.Context, q ReadingQuery) ([]models.SensorReading, error) {
	var (
		conds []string
		args  []any
	)

	if !q.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, q.From.UTC())
	}
	if !q.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, q.To.UTC())
	}

	query := `SELECT ` + selectReadingColumns + ` FROM sensor_readings`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
		if q.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, q.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SensorReading, 0, 64)
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (models.SensorReading, error) {
	var reading models.SensorReading
	if err := row.Scan(
		&reading.ID,
		&reading.Timestamp,
		&reading.IRDetection,
		&reading.VibrationRaw,
		&reading.VibrationFault,
		&reading.DistanceAdjusted,
		&reading.DistanceFault,
		&reading.AccelerationX,
		&reading.AccelerationY,
		&reading.AccelerationZ,
		&reading.IRFault,
		&reading.AccelerationFault,
		&reading.FaultDetected,
		&reading.RawSensorData,
	); err != nil {
		return models.SensorReading{}, err
	}
	reading.Timestamp = reading.Timestamp.UTC()
	return reading, nil
}
