package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"itms_backend/internal/models"
)

type FaultSQLite struct {
	db *sql.DB
}

func NewFaultSQLite(db *sql.DB) *FaultSQLite { return &FaultSQLite{db: db} }

var _ FaultRepo = (*FaultSQLite)(nil)

const (
	selectFaultColumns = `id, timestamp, fault_type, severity, description, sensor_reading_id, resolved, resolved_at`

	resolveFaultSQL = `UPDATE fault_logs SET resolved = 1, resolved_at = ? WHERE id = ?`
)

// List returns fault logs ordered timestamp DESC, optionally filtered by
// resolved state and severity.
func (r *FaultSQLite) List(ctx context.Context, q FaultQuery) ([]models.FaultLog, error) {
	var (
		conds []string
		args  []any
	)

	if q.Resolved != nil {
		conds = append(conds, "resolved = ?")
		args = append(args, *q.Resolved)
	}
	if sev := strings.ToLower(strings.TrimSpace(q.Severity)); sev != "" {
		conds = append(conds, "severity = ?")
		args = append(args, sev)
	}

	query := `SELECT ` + selectFaultColumns + ` FROM fault_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FaultLog, 0, 32)
	for rows.Next() {
		var (
			f          models.FaultLog
			resolvedAt sql.NullTime
		)
		if err := rows.Scan(
			&f.ID,
			&f.Timestamp,
			&f.FaultType,
			&f.Severity,
			&f.Description,
			&f.ReadingID,
			&f.Resolved,
			&resolvedAt,
		); err != nil {
			return nil, err
		}
		f.Timestamp = f.Timestamp.UTC()
		if resolvedAt.Valid {
			t := resolvedAt.Time.UTC()
			f.ResolvedAt = &t
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolve marks a fault as resolved at the given time. Returns
// ErrFaultNotFound when no row matches the id.
func (r *FaultSQLite) Resolve(ctx context.Context, id string, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	} else {
		at = at.UTC()
	}

	res, err := r.db.ExecContext(ctx, resolveFaultSQL, at, id)
	if err != nil {
		return fmt.Errorf("resolve fault %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for fault %q: %w", id, err)
	}
	if affected == 0 {
		return ErrFaultNotFound
	}
	return nil
}
