package handlers

import (
	"context"
	"net/http"
	"time"

	"itms_backend/internal/models"
	"itms_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockIngest struct {
	reading models.SensorReading
	events  []models.FaultLog
	err     error

	lastRaw string
	lastTS  string
	calls   int
}

func (m *mockIngest) Ingest(ctx context.Context, raw, tsStr string) (models.SensorReading, []models.FaultLog, error) {
	m.calls++
	m.lastRaw = raw
	m.lastTS = tsStr
	return m.reading, m.events, m.err
}

type mockReadings struct {
	latest     *models.SensorReading
	latestErr  error
	list       []models.SensorReading
	listErr    error
	lastFilter service.ReadingFilter
}

func (m *mockReadings) Latest(ctx context.Context) (*models.SensorReading, error) {
	return m.latest, m.latestErr
}
func (m *mockReadings) List(ctx context.Context, f service.ReadingFilter) ([]models.SensorReading, error) {
	m.lastFilter = f
	return m.list, m.listErr
}

type mockFaults struct {
	list       []models.FaultLog
	listErr    error
	resolveErr error

	lastFilter    service.FaultFilter
	lastResolveID string
}

func (m *mockFaults) List(ctx context.Context, f service.FaultFilter) ([]models.FaultLog, error) {
	m.lastFilter = f
	return m.list, m.listErr
}
func (m *mockFaults) Resolve(ctx context.Context, id string) error {
	m.lastResolveID = id
	return m.resolveErr
}

type mockStats struct {
	stats     models.SensorStats
	statsErr  error
	dashboard models.DashboardData
	dashErr   error
}

func (m *mockStats) Stats(ctx context.Context) (models.SensorStats, error) {
	return m.stats, m.statsErr
}
func (m *mockStats) Dashboard(ctx context.Context) (models.DashboardData, error) {
	return m.dashboard, m.dashErr
}

type mockExport struct {
	csvFilename  string
	csvData      string
	csvErr       error
	xlsxFilename string
	xlsxData     []byte
	xlsxErr      error
}

func (m *mockExport) CSV(ctx context.Context) (string, string, error) {
	return m.csvFilename, m.csvData, m.csvErr
}
func (m *mockExport) XLSX(ctx context.Context) (string, []byte, error) {
	return m.xlsxFilename, m.xlsxData, m.xlsxErr
}

type mockSimulator struct{}

func (m *mockSimulator) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
