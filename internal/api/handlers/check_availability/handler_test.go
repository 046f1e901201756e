package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio609/Studio-BookingService/internal/domain"
	checkAvailability "github.com/studio609/Studio-BookingService/internal/usecase/check_availability"
)

type fakeUseCase struct {
	resp *checkAvailability.Response
	err  error
	got  *checkAvailability.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_OK(t *testing.T) {
	from := domain.Day{Year: 2026, Month: time.June, Date: 1}
	uc := &fakeUseCase{resp: &checkAvailability.Response{
		From: from,
		To:   from,
		Verdicts: []domain.DayVerdict{{
			Date:        from,
			Available:   true,
			BookedCount: 1,
		}},
	}}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?from=2026-06-01&to=2026-06-01", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.False(t, uc.got.Debug)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-06-01", resp.From)
	assert.NotEmpty(t, resp.Rule)
	require.Len(t, resp.Days, 1)
	assert.True(t, resp.Days[0].Available)
	assert.Equal(t, 1, resp.Days[0].BookedCount)
	assert.Empty(t, resp.Skipped)
}

func TestHandle_DebugFlag(t *testing.T) {
	uc := &fakeUseCase{resp: &checkAvailability.Response{}}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?from=2026-06-01&to=2026-06-01&debug=1", nil)
	h.Handle(httptest.NewRecorder(), req)

	require.NotNil(t, uc.got)
	assert.True(t, uc.got.Debug)
}

func TestHandle_MissingParams(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?from=2026-06-01", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?from=01.06.2026&to=2026-06-01", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid range", checkAvailability.ErrInvalidRange, http.StatusBadRequest},
		{"range too large", checkAvailability.ErrRangeTooLarge, http.StatusBadRequest},
		{"calendar down", checkAvailability.ErrCalendarUnavailable, http.StatusBadGateway},
		{"internal", checkAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tc.err}, nopLogger{})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?from=2026-06-01&to=2026-06-03", nil)
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
