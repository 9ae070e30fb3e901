package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonService/internal/usecase/get_availability"
)

type fakeUseCase struct {
	resp *getAvailability.Response
	err  error

	gotReq *getAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.gotReq = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestRouter(uc *fakeUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/salons/{salonSlug}/availability", NewHandler(uc, nopLogger{}).Handle).
		Methods(http.MethodGet)
	return r
}

func TestHandle_Success(t *testing.T) {
	remaining := 2
	capacity := 3
	uc := &fakeUseCase{resp: &getAvailability.Response{
		SalonID:            1,
		SalonName:          "Тестовый салон",
		SalonSlug:          "test-salon",
		Timezone:           "Europe/Moscow",
		Capacity:           &capacity,
		Date:               time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		DurationMinutes:    60,
		GranularityMinutes: 30,
		Slots: []domain.TimeSlot{{
			StartsAt:          time.Date(2026, 9, 14, 7, 0, 0, 0, time.UTC), // 10:00 МСК
			EndsAt:            time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC),
			Available:         true,
			RemainingCapacity: &remaining,
		}},
	}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/salons/test-salon/availability?date=2026-09-14&duration=60", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Запрос собран из path и query параметров
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, "test-salon", uc.gotReq.SalonSlug)
	assert.Equal(t, 60, uc.gotReq.DurationMinutes)
	assert.Nil(t, uc.gotReq.GranularityMinutes)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "test-salon", resp.SalonSlug)
	assert.Equal(t, "2026-09-14", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].Available)
	require.NotNil(t, resp.Slots[0].RemainingCapacity)
	assert.Equal(t, 2, *resp.Slots[0].RemainingCapacity)
}

func TestHandle_GranularityOverridePassedThrough(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailability.Response{
		Timezone: "UTC",
		Slots:    []domain.TimeSlot{},
	}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/salons/test-salon/availability?date=2026-09-14&duration=60&granularity=15", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.gotReq.GranularityMinutes)
	assert.Equal(t, 15, *uc.gotReq.GranularityMinutes)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"без даты", "/api/v1/salons/test-salon/availability?duration=60"},
		{"кривая дата", "/api/v1/salons/test-salon/availability?date=14.09.2026&duration=60"},
		{"без длительности", "/api/v1/salons/test-salon/availability?date=2026-09-14"},
		{"кривая длительность", "/api/v1/salons/test-salon/availability?date=2026-09-14&duration=hour"},
		{"кривой шаг сетки", "/api/v1/salons/test-salon/availability?date=2026-09-14&duration=60&granularity=fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := httptest.NewRecorder()

			newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			// До use case дело не дошло
			assert.Nil(t, uc.gotReq)
		})
	}
}

func TestHandle_SalonNotFound(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrSalonNotFound}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/salons/ghost/availability?date=2026-09-14&duration=60", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: getAvailability.ErrInternal}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/salons/test-salon/availability?date=2026-09-14&duration=60", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
