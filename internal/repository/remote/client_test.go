package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, data any, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"success": status < 300}
	if data != nil {
		body["data"] = data
	}
	if code != "" {
		body["error"] = map[string]any{"code": code, "message": message}
	}
	_ = json.NewEncoder(w).Encode(body)
}

// fakeAPI is a minimal in-memory attendance API.
type fakeAPI struct {
	mu       sync.Mutex
	records  []attendance.RecordPayload
	revision int64
	token    string
	lastAuth string
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]string{"status": "ok"}, "", "")
	})
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeEnvelope(w, http.StatusUnauthorized, nil, "UNAUTHORIZED", "invalid email or password")
			return
		}
		writeEnvelope(w, http.StatusOK, auth.LoginResponse{AccessToken: f.token, AccessTokenExpiresIn: 3600}, "", "")
	})
	mux.HandleFunc("GET /api/v1/attendance", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, attendance.CollectionResponse{Records: f.records, Revision: f.revision}, "", "")
	})
	mux.HandleFunc("PUT /api/v1/attendance", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var req attendance.ReplaceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeEnvelope(w, http.StatusBadRequest, nil, "BAD_REQUEST", err.Error())
			return
		}
		if req.Revision != f.revision {
			writeEnvelope(w, http.StatusConflict, nil, "CONFLICT", "stale revision")
			return
		}
		f.records = req.Records
		f.revision++
		writeEnvelope(w, http.StatusOK, attendance.CollectionResponse{Records: f.records, Revision: f.revision}, "", "")
	})
	mux.HandleFunc("GET /api/v1/config", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, company.SystemConfigResponse{
			CompanyName: "Acme", WorkStartTime: "08:30", GracePeriodMinutes: 10, Timezone: "UTC+8",
		}, "", "")
	})
	return mux
}

func newTestClient(t *testing.T) (*Client, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{
		token: "tok-123",
		records: []attendance.RecordPayload{
			{ID: "r1", UserID: "u1", Date: "2024-05-01", CheckIn: "09:00:00", CheckOut: "--:--"},
		},
		revision: 4,
	}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/"), api
}

func TestClient_Health(t *testing.T) {
	c, _ := newTestClient(t)
	assert.NoError(t, c.Health(context.Background()))
}

func TestClient_HealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url).Health(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_LoginStoresToken(t *testing.T) {
	ctx := context.Background()
	c, api := newTestClient(t)

	_, err := c.Login(ctx, auth.LoginRequest{Email: "rina@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	resp, err := c.Login(ctx, auth.LoginRequest{Email: " Rina@Acme.test ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.AccessToken)

	_, err = NewAttendanceStore(c).FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", api.lastAuth)
}

func TestAttendanceStore_FetchNormalizes(t *testing.T) {
	c, _ := newTestClient(t)

	coll, err := NewAttendanceStore(c).FetchAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), coll.Revision)
	require.Len(t, coll.Records, 1)
	assert.True(t, coll.Records[0].IsOpen())
}

func TestAttendanceStore_ReplaceAllRevision(t *testing.T) {
	ctx := context.Background()
	c, api := newTestClient(t)
	store := NewAttendanceStore(c)

	out := "17:00:00"
	records := []attendance.Record{{ID: "r1", UserID: "u1", Date: "2024-05-01", CheckIn: "09:00:00", CheckOut: &out, AccumulatedTime: 28800}}

	rev, err := store.ReplaceAll(ctx, records, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rev)
	assert.Equal(t, "17:00:00", api.records[0].CheckOut)

	_, err = store.ReplaceAll(ctx, records, 4)
	assert.ErrorIs(t, err, attendance.ErrRevisionConflict)
}

func TestAttendanceStore_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, nil, "INTERNAL_SERVER_ERROR", "db down")
	}))
	defer srv.Close()

	_, err := NewAttendanceStore(NewClient(srv.URL)).FetchAll(context.Background())

	assert.ErrorIs(t, err, attendance.ErrStoreUnavailable)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "db down", apiErr.Message)
}

func TestClient_FetchConfigFillsDefaults(t *testing.T) {
	c, _ := newTestClient(t)

	cfg, err := c.FetchConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "08:30", cfg.WorkStartTime)
	assert.Equal(t, "17:00", cfg.WorkEndTime)
	assert.Equal(t, company.SchedulingModeFixedShift, cfg.SchedulingMode)
	assert.Equal(t, "UTC+8", cfg.Timezone)
}
