package service

import (
	"context"
	"errors"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/repository"
)

// Listing bounds, matching the public API contract.
const (
	defaultReadingLimit = 100
	maxReadingLimit     = 1000
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// ReadingsService exposes read access to stored sensor readings.
type ReadingsService struct {
	readings repository.ReadingRepo
}

func NewReadingsService(readings repository.ReadingRepo) *ReadingsService {
	return &ReadingsService{readings: readings}
}

// Latest returns the most recent reading, or nil when nothing is stored yet.
func (s *ReadingsService) Latest(ctx context.Context) (*models.SensorReading, error) {
	return s.readings.Latest(ctx)
}

// List returns readings ordered newest first, validated and clamped.
func (s *ReadingsService) List(ctx context.Context, f ReadingFilter) ([]models.SensorReading, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultReadingLimit
	}
	if limit > maxReadingLimit {
		limit = maxReadingLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	return s.readings.List(ctx, repository.ReadingQuery{
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: offset,
	})
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
