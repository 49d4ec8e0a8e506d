package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
)

func newTestServer(t *testing.T) (*Server, *service.Services) {
	t.Helper()
	tmpDir := t.TempDir()
	services := service.NewServicesWithPaths(
		filepath.Join(tmpDir, "sheets.jsonl"),
		filepath.Join(tmpDir, "config.toml"),
		config.DefaultConfig(),
	)
	return New(services), services
}

func doJSON(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]json.RawMessage
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

type outcomeBody struct {
	Result *struct {
		Total  float64 `json:"total"`
		Totals []struct {
			ID    string  `json:"id"`
			Hours float64 `json:"hours"`
		} `json:"totals"`
	} `json:"result"`
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func decodeOutcome(t *testing.T, raw json.RawMessage) outcomeBody {
	t.Helper()
	var o outcomeBody
	require.NoError(t, json.Unmarshal(raw, &o))
	return o
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err, "request id should be a uuid")
}

func TestCalculate_BothModes(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doJSON(t, s, `{"text": "a 8-9\nb 9-10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Contains(t, body, "ordered")
	require.Contains(t, body, "unordered")

	var differ bool
	require.NoError(t, json.Unmarshal(body["differ"], &differ))
	assert.False(t, differ)

	ordered := decodeOutcome(t, body["ordered"])
	require.NotNil(t, ordered.Result)
	assert.Equal(t, 2.0, ordered.Result.Total)
	require.Len(t, ordered.Result.Totals, 2)
	assert.Equal(t, "a", ordered.Result.Totals[0].ID)
	assert.Equal(t, 1.0, ordered.Result.Totals[0].Hours)
}

func TestCalculate_SingleMode(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doJSON(t, s, `{"text": "a 8-9", "mode": "Ordered"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, body, "ordered")
	assert.NotContains(t, body, "unordered")
	assert.NotContains(t, body, "differ")
}

func TestCalculate_ErrorOutcome(t *testing.T) {
	s, _ := newTestServer(t)

	rec, body := doJSON(t, s, `{"text": "b 9-8\na 7-8"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	ordered := decodeOutcome(t, body["ordered"])
	assert.Nil(t, ordered.Result)
	assert.Equal(t, "double_charged", ordered.Kind)
	assert.Contains(t, ordered.Error, "Double charging")

	unordered := decodeOutcome(t, body["unordered"])
	require.NotNil(t, unordered.Result)
	assert.Equal(t, 12.0, unordered.Result.Total)

	var differ bool
	require.NoError(t, json.Unmarshal(body["differ"], &differ))
	assert.True(t, differ)
}

func TestCalculate_Form(t *testing.T) {
	s, _ := newTestServer(t)

	form := url.Values{}
	form.Set("input", "oh 8-12, 1-5")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	ordered := decodeOutcome(t, body["ordered"])
	require.NotNil(t, ordered.Result)
	assert.Equal(t, 8.0, ordered.Result.Total)
}

func TestCalculate_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"empty text", `{"text": "  "}`, "text is required"},
		{"missing text", `{}`, "text is required"},
		{"invalid mode", `{"text": "a 8-9", "mode": "sideways"}`, "invalid mode"},
		{"negative target", `{"text": "a 8-9", "target": -1}`, "target must be between 0 and 24"},
		{"malformed json", `{"text": `, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t)

			rec, _ := doJSON(t, s, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}

func TestDaySheet(t *testing.T) {
	s, services := newTestServer(t)
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.Local)
	s.now = func() time.Time { return now }

	_, err := services.Sheet.Add(now, "oh 8-9")
	require.NoError(t, err)
	_, err = services.Sheet.Add(now, "c 9-12")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sheet?date=today", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Day   string `json:"day"`
		Lines []struct {
			Index int `json:"index"`
			Line  struct {
				Text string `json:"text"`
			} `json:"line"`
		} `json:"lines"`
		Comparison map[string]json.RawMessage `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2026-10-18", body.Day)
	require.Len(t, body.Lines, 2)
	assert.Equal(t, 1, body.Lines[0].Index)
	assert.Equal(t, "oh 8-9", body.Lines[0].Line.Text)

	ordered := decodeOutcome(t, body.Comparison["ordered"])
	require.NotNil(t, ordered.Result)
	assert.Equal(t, 4.0, ordered.Result.Total)
}

func TestDaySheet_InvalidDate(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sheet?date=someday", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t)

	limited := 0
	for i := 0; i < 2*requestBurst; i++ {
		rec, _ := doJSON(t, s, `{"text": "oh 8-9"}`)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Positive(t, limited)

	// Health checks are never limited.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
