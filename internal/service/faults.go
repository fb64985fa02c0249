package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/repository"
)

const (
	defaultFaultLimit = 50
	maxFaultLimit     = 500
)

// ErrInvalidSeverity rejects unknown severity filters.
var ErrInvalidSeverity = errors.New("invalid severity: must be minor, major or critical")

// FaultsService exposes fault-log access and resolution.
type FaultsService struct {
	faults repository.FaultRepo
}

func NewFaultsService(faults repository.FaultRepo) *FaultsService {
	return &FaultsService{faults: faults}
}

// List returns fault logs newest first, validated and clamped.
func (s *FaultsService) List(ctx context.Context, f FaultFilter) ([]models.FaultLog, error) {
	severity := strings.ToLower(strings.TrimSpace(f.Severity))
	switch severity {
	case "", models.SeverityMinor, models.SeverityMajor, models.SeverityCritical:
	default:
		return nil, ErrInvalidSeverity
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultFaultLimit
	}
	if limit > maxFaultLimit {
		limit = maxFaultLimit
	}

	return s.faults.List(ctx, repository.FaultQuery{
		Resolved: f.Resolved,
		Severity: severity,
		Limit:    limit,
	})
}

// Resolve marks a fault as resolved now. Resolution is bookkeeping only; it
// never touches the reading the fault is linked to.
func (s *FaultsService) Resolve(ctx context.Context, id string) error {
	return s.faults.Resolve(ctx, id, time.Now().UTC())
}
