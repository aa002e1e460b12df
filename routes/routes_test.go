package routes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"capster-board/controllers"
	"capster-board/metrics"
	"capster-board/models"
	"capster-board/repository"
	"capster-board/services"
	"capster-board/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type emptyStore struct{}

func (emptyStore) ListByDate(context.Context, models.Date) ([]models.Appointment, error) {
	return []models.Appointment{}, nil
}

func (emptyStore) FindByID(context.Context, int64) (*models.Appointment, error) {
	return nil, repository.ErrNotFound
}

func (emptyStore) Update(context.Context, int64, repository.AppointmentUpdate) (*models.Appointment, error) {
	return nil, repository.ErrNotFound
}

func (emptyStore) Delete(context.Context, int64) error { return repository.ErrNotFound }

func (emptyStore) Search(context.Context, string, int) ([]models.Customer, error) {
	return []models.Customer{}, nil
}

func (emptyStore) FindByWhatsApp(context.Context, string) (*models.Customer, error) {
	return nil, repository.ErrNotFound
}

func (emptyStore) Create(context.Context, *models.Customer) error { return nil }

func (emptyStore) Book(context.Context, services.BookingRequest) ([]models.Appointment, error) {
	return nil, services.ErrInvalidBooking
}

func (emptyStore) List(context.Context) (*services.Masters, error) {
	return &services.Masters{}, nil
}

func (emptyStore) GetSummary(_ context.Context, p services.Period) (*services.Summary, error) {
	return &services.Summary{Period: p}, nil
}

func (emptyStore) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T, withAuth bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	store := emptyStore{}
	export := services.NewExportService(store, nil, nil, logger)

	deps := Dependencies{
		Logger:       logger,
		Metrics:      metrics.New(reg),
		Gatherer:     reg,
		CORSOrigins:  []string{"http://localhost:3000"},
		Appointments: controllers.NewAppointmentController(store, store, time.Now),
		Customers:    controllers.NewCustomerController(store),
		Masters:      controllers.NewMasterController(store),
		Summary:      controllers.NewSummaryController(store),
		Export:       controllers.NewExportController(export),
		Health:       controllers.NewHealthController(store),
	}
	if withAuth {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
		require.NoError(t, err)
		deps.JWTSecret = "jwt-secret"
		deps.Auth = controllers.NewAuthController(string(hash), deps.JWTSecret, time.Hour)
	}
	return SetupRouter(deps)
}

func get(r http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpenRoutes(t *testing.T) {
	r := newTestRouter(t, false)

	for _, path := range []string{"/health", "/api/appointments", "/api/appointments/grouped", "/api/customers", "/api/masters", "/api/summary", "/api/export/summary"} {
		w := get(r, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(utils.RequestIDHeader), path)
	}
}

func TestUnknownRoute(t *testing.T) {
	w := get(newTestRouter(t, false), "/api/invoices")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, false)
	get(r, "/api/masters")

	w := get(r, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `capster_http_request_duration_seconds_count{method="GET",route="/api/masters",status="200"} 1`)
}

func TestProtectedRoutes(t *testing.T) {
	r := newTestRouter(t, true)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/masters").Code)
	assert.Equal(t, http.StatusOK, get(r, "/health").Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"secret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	token := w.Body.String()
	token = token[strings.Index(token, `"token":"`)+len(`"token":"`):]
	token = token[:strings.Index(token, `"`)]

	assert.Equal(t, http.StatusOK, get(r, "/api/masters", "Authorization", "Bearer "+token).Code)
}

func TestLoginAbsentWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"password":"x"}`))
	w := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPanicIsLoggedAndMeasured(t *testing.T) {
	r := newTestRouter(t, false)
	r.GET("/api/boom", func(c *gin.Context) { panic("boom") })

	w := get(r, "/api/boom")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	metricsBody := get(r, "/metrics").Body.String()
	assert.Contains(t, metricsBody, `capster_http_request_duration_seconds_count{method="GET",route="/api/boom",status="500"} 1`)
}
