package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"itms_backend/internal/logger"
)

// Synthetic value ranges, roughly what the NodeMCU firmware reports.
const (
	simVibrationMin = 300
	simVibrationMax = 500
	simDistanceMin  = 2.0
	simDistanceMax  = 60.0
	simAccSpread    = 500 // normal jitter per axis
	simAccSpikeProb = 0.05
	simAccSpikeMag  = 1500
)

// SimulatorService feeds synthetic telemetry through the real ingestion
// pipeline. Used for demos and frontend work when no sensor unit is
// attached; gated by config.
type SimulatorService struct {
	ingest Ingest
	log    *logger.Logger
	rng    *rand.Rand
}

func NewSimulatorService(ingest Ingest, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		ingest: ingest,
		log:    log,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			raw := s.generate()
			if _, _, err := s.ingest.Ingest(ctx, raw, now.UTC().Format(time.RFC3339)); err != nil {
				if s.log != nil {
					s.log.Errorw("simulator_ingest_failed", "err", err, "raw", raw)
				}
			}
		}
	}
}

// generate produces one telemetry string in the unit's wire format, with an
// occasional acceleration spike so every fault category shows up over time.
func (s *SimulatorService) generate() string {
	ir := s.rng.Intn(2)
	vib := simVibrationMin + s.rng.Intn(simVibrationMax-simVibrationMin+1)
	dist := simDistanceMin + s.rng.Float64()*(simDistanceMax-simDistanceMin)

	accX := s.rng.Intn(2*simAccSpread+1) - simAccSpread
	accY := s.rng.Intn(2*simAccSpread+1) - simAccSpread
	accZ := s.rng.Intn(2*simAccSpread+1) - simAccSpread
	if s.rng.Float64() < simAccSpikeProb {
		accZ = simAccSpikeMag
	}

	// The unit sets its own FAULT bit from the same thresholds the backend
	// uses, minus acceleration, which only the backend checks.
	thr := DefaultThresholds()
	fault := 0
	if ir == 1 ||
		(vib >= thr.VibrationMin && vib <= thr.VibrationMax) ||
		dist < thr.DistanceMinCM || dist > thr.DistanceMaxCM {
		fault = 1
	}

	return fmt.Sprintf("IR:%d,VIB_RAW:%d,DIST_ADJ:%.1f,ACC:%d,%d,%d,FAULT:%d",
		ir, vib, dist, accX, accY, accZ, fault)
}
