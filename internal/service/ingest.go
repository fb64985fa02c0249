package service

import (
	"context"
	"fmt"
	"time"

	"itms_backend/internal/logger"
	"itms_backend/internal/metrics"
	"itms_backend/internal/models"
	"itms_backend/internal/repository"
)

// IngestService runs the decode → classify → persist pipeline for one raw
// telemetry submission.
type IngestService struct {
	readings   repository.ReadingRepo
	classifier *Classifier
	log        *logger.Logger
}

func NewIngestService(readings repository.ReadingRepo, log *logger.Logger) *IngestService {
	return &IngestService{
		readings:   readings,
		classifier: NewClassifier(DefaultThresholds()),
		log:        log,
	}
}

// Ingest decodes raw telemetry, classifies it and stores the reading with
// its fault events as one unit. Decode failure rejects the whole submission;
// a bad device timestamp falls back to the current time and ingestion
// continues.
func (s *IngestService) Ingest(ctx context.Context, raw, tsStr string) (models.SensorReading, []models.FaultLog, error) {
	parsed, err := ParseSensorString(raw)
	if err != nil {
		metrics.ObserveIngest(metrics.ResultInvalidFormat)
		return models.SensorReading{}, nil, err
	}

	ts, fellBack := ParseTimestamp(tsStr, time.Now().UTC())
	if fellBack {
		metrics.ObserveTimestampFallback()
		if s.log != nil {
			s.log.Warnw("timestamp_parse_fallback", "timestamp", tsStr)
		}
	}

	flags := s.classifier.Classify(parsed)

	// Explicit merge of the declared and derived fault bits. The wire FAULT
	// bit is advisory: classification can strengthen it, never clear it.
	overallFault := parsed.FaultDetected == 1 || flags.Any()

	reading := models.SensorReading{
		Timestamp:         ts,
		IRDetection:       parsed.IRDetection,
		VibrationRaw:      parsed.VibrationRaw,
		VibrationFault:    flags.Vibration,
		DistanceAdjusted:  parsed.DistanceAdjusted,
		DistanceFault:     flags.Distance,
		AccelerationX:     parsed.AccelerationX,
		AccelerationY:     parsed.AccelerationY,
		AccelerationZ:     parsed.AccelerationZ,
		IRFault:           flags.IR,
		AccelerationFault: flags.Acceleration,
		FaultDetected:     overallFault,
		RawSensorData:     raw,
	}

	events := BuildFaultEvents(parsed, flags)
	for i := range events {
		events[i].Timestamp = ts
	}

	id, err := s.readings.Append(ctx, reading, events)
	if err != nil {
		metrics.ObserveIngest(metrics.ResultStoreError)
		return models.SensorReading{}, nil, fmt.Errorf("store reading: %w", err)
	}
	reading.ID = id
	for i := range events {
		events[i].ReadingID = id
	}

	metrics.ObserveIngest(metrics.ResultSuccess)
	for _, e := range events {
		metrics.ObserveFaultEvent(e.FaultType, e.Severity)
	}
	if s.log != nil {
		s.log.Infow("sensor_reading_stored", "reading_id", id, "faults", len(events))
	}
	return reading, events, nil
}
