package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/repository"
)

// capturingReadingRepo records the query it was asked with.
type capturingReadingRepo struct {
	gotQuery repository.ReadingQuery
	latest   *models.SensorReading
}

func (c *capturingReadingRepo) Append(ctx context.Context, r models.SensorReading, events []models.FaultLog) (int64, error) {
	return 0, nil
}

func (c *capturingReadingRepo) Latest(ctx context.Context) (*models.SensorReading, error) {
	return c.latest, nil
}

func (c *capturingReadingRepo) List(ctx context.Context, q repository.ReadingQuery) ([]models.SensorReading, error) {
	c.gotQuery = q
	return nil, nil
}

func TestReadingsList_LimitHandling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"default when unset", 0, 0, defaultReadingLimit, 0},
		{"default when negative", -5, -3, defaultReadingLimit, 0},
		{"explicit kept", 25, 10, 25, 10},
		{"clamped to max", 5000, 0, maxReadingLimit, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := &capturingReadingRepo{}
			svc := NewReadingsService(repo)

			if _, err := svc.List(context.Background(), ReadingFilter{Limit: tc.limit, Offset: tc.offset}); err != nil {
				t.Fatalf("List: %v", err)
			}
			if repo.gotQuery.Limit != tc.wantLimit {
				t.Fatalf("limit = %d, want %d", repo.gotQuery.Limit, tc.wantLimit)
			}
			if repo.gotQuery.Offset != tc.wantOffset {
				t.Fatalf("offset = %d, want %d", repo.gotQuery.Offset, tc.wantOffset)
			}
		})
	}
}

func TestReadingsList_RejectsInvertedRange(t *testing.T) {
	t.Parallel()

	repo := &capturingReadingRepo{}
	svc := NewReadingsService(repo)

	now := time.Now()
	_, err := svc.List(context.Background(), ReadingFilter{From: now, To: now.Add(-time.Hour)})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("err = %v, want errInvalidTimeRange", err)
	}
}

func TestReadingsList_NormalizesRangeToUTC(t *testing.T) {
	t.Parallel()

	repo := &capturingReadingRepo{}
	svc := NewReadingsService(repo)

	loc := time.FixedZone("EAT", 3*60*60)
	from := time.Date(2025, time.September, 28, 10, 0, 0, 0, loc)
	to := time.Date(2025, time.September, 28, 12, 0, 0, 0, loc)

	if _, err := svc.List(context.Background(), ReadingFilter{From: from, To: to}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.gotQuery.From.Location() != time.UTC || repo.gotQuery.To.Location() != time.UTC {
		t.Fatal("range must be normalized to UTC")
	}
	if !repo.gotQuery.From.Equal(from) || !repo.gotQuery.To.Equal(to) {
		t.Fatal("normalization must not shift the instants")
	}
}

func TestReadingsLatest_PassesThrough(t *testing.T) {
	t.Parallel()

	want := &models.SensorReading{ID: 42}
	svc := NewReadingsService(&capturingReadingRepo{latest: want})

	got, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got != want {
		t.Fatalf("latest = %+v, want %+v", got, want)
	}

	empty := NewReadingsService(&capturingReadingRepo{})
	got, err = empty.Latest(context.Background())
	if err != nil || got != nil {
		t.Fatalf("empty store latest = %+v, %v; want nil, nil", got, err)
	}
}
