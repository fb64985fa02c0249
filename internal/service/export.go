package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/repository"

	"github.com/xuri/excelize/v2"
)

// exportWindow is how far back an export reaches.
const exportWindow = 6 * time.Hour

const (
	csvExportFilename  = "itms_export.csv"
	xlsxExportFilename = "itms_export.xlsx"
	xlsxSheetName      = "Sensor Readings"
)

var exportHeader = []string{
	"id", "timestamp", "ir_detection", "vibration_raw", "vibration_fault",
	"distance_adjusted", "distance_fault",
	"acceleration_x", "acceleration_y", "acceleration_z",
	"fault_detected", "raw_sensor_data",
}

// ExportService renders recent readings for download.
type ExportService struct {
	readings repository.ReadingRepo
}

func NewExportService(readings repository.ReadingRepo) *ExportService {
	return &ExportService{readings: readings}
}

func (s *ExportService) recentReadings(ctx context.Context) ([]models.SensorReading, error) {
	cutoff := time.Now().UTC().Add(-exportWindow)
	return s.readings.List(ctx, repository.ReadingQuery{From: cutoff})
}

// CSV returns the last export window of readings as an inline CSV string.
func (s *ExportService) CSV(ctx context.Context) (string, string, error) {
	readings, err := s.recentReadings(ctx)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return "", "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range readings {
		if err := w.Write(readingRow(r)); err != nil {
			return "", "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", fmt.Errorf("flush csv: %w", err)
	}
	return csvExportFilename, buf.String(), nil
}

// XLSX returns the last export window of readings as an Excel workbook.
func (s *ExportService) XLSX(ctx context.Context) (string, []byte, error) {
	readings, err := s.recentReadings(ctx)
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	// WriteTo needs the file open, so no deferred Close before writing out.
	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return "", nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, title); err != nil {
			return "", nil, fmt.Errorf("set header cell: %w", err)
		}
	}

	for rowIdx, r := range readings {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return "", nil, fmt.Errorf("row cell name: %w", err)
		}
		row := []any{
			r.ID, r.Timestamp.Format(time.RFC3339), r.IRDetection,
			r.VibrationRaw, r.VibrationFault,
			r.DistanceAdjusted, r.DistanceFault,
			r.AccelerationX, r.AccelerationY, r.AccelerationZ,
			r.FaultDetected, r.RawSensorData,
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &row); err != nil {
			return "", nil, fmt.Errorf("set row %d: %w", rowIdx+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("close workbook: %w", err)
	}
	return xlsxExportFilename, buf.Bytes(), nil
}

func readingRow(r models.SensorReading) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Timestamp.Format(time.RFC3339),
		strconv.Itoa(r.IRDetection),
		strconv.Itoa(r.VibrationRaw),
		strconv.FormatBool(r.VibrationFault),
		strconv.FormatFloat(r.DistanceAdjusted, 'f', -1, 64),
		strconv.FormatBool(r.DistanceFault),
		strconv.FormatFloat(r.AccelerationX, 'f', -1, 64),
		strconv.FormatFloat(r.AccelerationY, 'f', -1, 64),
		strconv.FormatFloat(r.AccelerationZ, 'f', -1, 64),
		strconv.FormatBool(r.FaultDetected),
		r.RawSensorData,
	}
}
