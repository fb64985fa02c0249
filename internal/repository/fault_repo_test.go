package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"itms_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockFaultRepo(t *testing.T) (*FaultSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewFaultSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func faultColumns() []string {
	return []string{"id", "timestamp", "fault_type", "severity", "description", "sensor_reading_id", "resolved", "resolved_at"}
}

func TestFaultSQLite_List(t *testing.T) {
	ts := time.Date(2025, time.September, 28, 12, 0, 0, 0, time.UTC)

	t.Run("no filters", func(t *testing.T) {
		repo, mock, cleanup := newMockFaultRepo(t)
		defer cleanup()

		resolvedAt := ts.Add(time.Hour)
		mock.ExpectQuery("SELECT (.+) FROM fault_logs ORDER BY timestamp DESC$").
			WillReturnRows(sqlmock.NewRows(faultColumns()).
				AddRow("f2", ts, models.FaultTypeIR, models.SeverityCritical,
					"Track obstruction detected", int64(3), false, nil).
				AddRow("f1", ts.Add(-time.Minute), models.FaultTypeDistance, models.SeverityMinor,
					"Distance out of range: 60cm", int64(2), true, resolvedAt))

		got, err := repo.List(context.Background(), FaultQuery{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].ID != "f2" || got[0].ResolvedAt != nil {
			t.Fatalf("first fault wrong: %+v", got[0])
		}
		if got[1].ResolvedAt == nil || !got[1].ResolvedAt.Equal(resolvedAt) {
			t.Fatalf("resolved_at not mapped: %+v", got[1])
		}
		if got[1].ReadingID != 2 {
			t.Fatalf("reading id = %d, want 2", got[1].ReadingID)
		}
	})

	t.Run("resolved and severity filters with limit", func(t *testing.T) {
		repo, mock, cleanup := newMockFaultRepo(t)
		defer cleanup()

		mock.ExpectQuery("SELECT (.+) FROM fault_logs WHERE resolved = \\? AND severity = \\? ORDER BY timestamp DESC LIMIT \\?").
			WithArgs(false, models.SeverityMajor, 50).
			WillReturnRows(sqlmock.NewRows(faultColumns()))

		unresolved := false
		got, err := repo.List(context.Background(), FaultQuery{
			Resolved: &unresolved,
			Severity: "MAJOR", // normalized before hitting the store
			Limit:    50,
		})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
	})
}

func TestFaultSQLite_Resolve(t *testing.T) {
	at := time.Date(2025, time.September, 28, 13, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockFaultRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(resolveFaultSQL)).
			WithArgs(at, "f1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Resolve(context.Background(), "f1", at); err != nil {
			t.Fatalf("Resolve: %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock, cleanup := newMockFaultRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(resolveFaultSQL)).
			WithArgs(at, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Resolve(context.Background(), "missing", at)
		if !errors.Is(err, ErrFaultNotFound) {
			t.Fatalf("err = %v, want ErrFaultNotFound", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockFaultRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(resolveFaultSQL)).
			WithArgs(at, "f1").
			WillReturnError(errors.New("db locked"))

		err := repo.Resolve(context.Background(), "f1", at)
		if err == nil || errors.Is(err, ErrFaultNotFound) {
			t.Fatalf("err = %v, want wrapped exec error", err)
		}
	})
}
