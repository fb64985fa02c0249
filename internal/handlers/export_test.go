package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"itms_backend/internal/service"
)

func TestExportCSVEndpoint(t *testing.T) {
	export := &mockExport{
		csvFilename: "itms_export.csv",
		csvData:     "id,timestamp\n1,2025-09-28T12:00:00Z\n",
	}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Export:        export,
	}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/export", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Filename string `json:"filename"`
		CSV      string `json:"csv"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Filename != export.csvFilename {
		t.Fatalf("filename = %q", resp.Filename)
	}
	if !strings.HasPrefix(resp.CSV, "id,timestamp") {
		t.Fatalf("csv body = %q", resp.CSV)
	}
}

func TestExportXLSXEndpoint(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04} // zip magic, what a real workbook starts with
	export := &mockExport{
		xlsxFilename: "itms_export.xlsx",
		xlsxData:     payload,
	}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 1},
		Export:        export,
	}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodGet, "/api/v1/export/xlsx", "valid", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, export.xlsxFilename) {
		t.Fatalf("content disposition = %q", cd)
	}
	if !bytes.Equal(w.Body.Bytes(), payload) {
		t.Fatalf("body = %v", w.Body.Bytes())
	}
}
