package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"itms_backend/internal/models"
)

// ErrInvalidFormat is returned when a telemetry string cannot be decoded
// into a complete reading. No partial reading is ever produced.
var ErrInvalidFormat = errors.New("invalid sensor data format")

// Wire format keys sent by the NodeMCU unit.
const (
	keyIR      = "IR"
	keyVibRaw  = "VIB_RAW"
	keyDistAdj = "DIST_ADJ"
	keyAcc     = "ACC"
	keyFault   = "FAULT"
)

// ParseSensorString decodes a raw telemetry string, e.g.
// "IR:1,VIB_RAW:435,DIST_ADJ:18,ACC:123,456,789,FAULT:1".
// Token order is arbitrary and unknown keys are ignored; tokens without a
// ':' separator are skipped. The decode fails as a whole when IR, VIB_RAW,
// DIST_ADJ or FAULT is missing or carries an unparsable value. Acceleration
// defaults to zero when no ACC token is present.
func ParseSensorString(raw string) (models.ParsedReading, error) {
	var (
		reading models.ParsedReading

		haveIR    bool
		haveVib   bool
		haveDist  bool
		haveFault bool
	)

	components := strings.Split(strings.TrimSpace(raw), ",")
	for i, component := range components {
		key, value, found := strings.Cut(component, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case keyIR:
			v, err := strconv.Atoi(value)
			if err != nil {
				return models.ParsedReading{}, fmt.Errorf("%w: IR value %q", ErrInvalidFormat, value)
			}
			reading.IRDetection = v
			haveIR = true

		case keyVibRaw:
			v, err := strconv.Atoi(value)
			if err != nil {
				return models.ParsedReading{}, fmt.Errorf("%w: VIB_RAW value %q", ErrInvalidFormat, value)
			}
			reading.VibrationRaw = v
			haveVib = true

		case keyDistAdj:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return models.ParsedReading{}, fmt.Errorf("%w: DIST_ADJ value %q", ErrInvalidFormat, value)
			}
			reading.DistanceAdjusted = v
			haveDist = true

		case keyFault:
			v, err := strconv.Atoi(value)
			if err != nil {
				return models.ParsedReading{}, fmt.Errorf("%w: FAULT value %q", ErrInvalidFormat, value)
			}
			reading.FaultDetected = v
			haveFault = true

		case keyAcc:
			// The unit sends X in the ACC token and Y/Z as the next two bare
			// tokens, so they must be taken by position, whatever their own
			// labels are. Firmware compatibility; do not replace this with a
			// key-based lookup.
			x, err := strconv.ParseFloat(value, 64)
			if err != nil {
				reading.AccelerationX = 0
				reading.AccelerationY = 0
				reading.AccelerationZ = 0
				continue
			}
			reading.AccelerationX = x
			reading.AccelerationY = 0
			reading.AccelerationZ = 0
			if i+2 < len(components) {
				y, errY := strconv.ParseFloat(strings.TrimSpace(components[i+1]), 64)
				z, errZ := strconv.ParseFloat(strings.TrimSpace(components[i+2]), 64)
				if errY == nil && errZ == nil {
					reading.AccelerationY = y
					reading.AccelerationZ = z
				}
			}

		default:
			// unknown key, ignore
		}
	}

	if !haveIR || !haveVib || !haveDist || !haveFault {
		return models.ParsedReading{}, fmt.Errorf("%w: missing required fields", ErrInvalidFormat)
	}
	return reading, nil
}

// timestampLayouts accepted from the device, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601-like device timestamp, optionally
// Z-suffixed. On failure it returns now and reports the fallback; an
// unparsable timestamp never fails an ingestion.
func ParseTimestamp(s string, now time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), false
		}
	}
	return now.UTC(), true
}
