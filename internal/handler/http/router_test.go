package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-sync/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/company"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-sync/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-sync/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-sync/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type fakeAuthService struct{}

func (fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if req.Password != "password123" {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	return auth.LoginResponse{AccessToken: "token", AccessTokenExpiresIn: 3600}, nil
}

func (fakeAuthService) EnsureOwner(ctx context.Context, req auth.BootstrapRequest) (bool, error) {
	return false, nil
}

type fakeCollectionService struct {
	revision  int64
	companyID string
}

func (f *fakeCollectionService) Get(ctx context.Context, companyID string) (attendance.CollectionResponse, error) {
	f.companyID = companyID
	return attendance.CollectionResponse{Records: []attendance.RecordPayload{}, Revision: f.revision}, nil
}

func (f *fakeCollectionService) Replace(ctx context.Context, companyID string, req attendance.ReplaceRequest) (attendance.CollectionResponse, error) {
	f.companyID = companyID
	if req.Revision != f.revision {
		return attendance.CollectionResponse{}, attendance.ErrRevisionConflict
	}
	f.revision++
	return attendance.CollectionResponse{Records: req.Records, Revision: f.revision}, nil
}

type fakeConfigService struct{}

func (fakeConfigService) Get(ctx context.Context, companyID string) (company.SystemConfigResponse, error) {
	return company.ToResponse(company.DefaultSystemConfig()), nil
}

func (fakeConfigService) Update(ctx context.Context, companyID string, req company.UpdateSystemConfigRequest) (company.SystemConfigResponse, error) {
	return req.SystemConfigResponse, nil
}

type fakeRosterService struct{}

func (fakeRosterService) Get(ctx context.Context, companyID string) (schedule.RosterResponse, error) {
	return schedule.ToResponse(schedule.Roster{}), nil
}

type fakeEmployeeService struct{}

func (fakeEmployeeService) List(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "u1", FullName: "Ada", Role: "employee"}}, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

type routerFixture struct {
	router      *chi.Mux
	jwt         jwt.Service
	collections *fakeCollectionService
}

func newRouterFixture(t *testing.T, dbErr error) routerFixture {
	t.Helper()
	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	collections := &fakeCollectionService{}
	router := NewRouter(
		RouterOptions{AllowedOrigins: []string{"*"}, Env: "test", Version: "test", LogLevel: slog.LevelError},
		jwtService,
		HealthHandler(fakePinger{err: dbErr}),
		NewAuthHandler(fakeAuthService{}),
		NewAttendanceHandler(collections),
		NewConfigHandler(fakeConfigService{}),
		NewReferenceHandler(fakeRosterService{}, fakeEmployeeService{}),
	)
	return routerFixture{router: router, jwt: jwtService, collections: collections}
}

func (f routerFixture) token(t *testing.T, role employee.Role) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(employee.Employee{ID: "u1", CompanyID: "c1", Email: "a@b.test", Role: role})
	require.NoError(t, err)
	return token
}

func (f routerFixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestRouter_Health(t *testing.T) {
	rec, resp := newRouterFixture(t, nil).do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = newRouterFixture(t, errors.New("down")).do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, resp.Success)
}

func TestRouter_Login(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec, resp := f.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "a@b.test", Password: "password123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	rec, resp = f.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "a@b.test", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	rec, resp = f.do(t, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, resp.Error.Details, "email")
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t, nil)

	for _, path := range []string{"/api/v1/attendance", "/api/v1/config", "/api/v1/roster", "/api/v1/employees"} {
		rec, _ := f.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec, _ = f.do(t, http.MethodGet, path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_AttendanceRevisionConflict(t *testing.T) {
	f := newRouterFixture(t, nil)
	token := f.token(t, employee.RoleEmployee)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/attendance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "c1", f.collections.companyID)

	body := attendance.ReplaceRequest{Revision: 0, Records: []attendance.RecordPayload{}}
	rec, _ = f.do(t, http.MethodPut, "/api/v1/attendance", token, body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = f.do(t, http.MethodPut, "/api/v1/attendance", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestRouter_ConfigUpdateRequiresManager(t *testing.T) {
	f := newRouterFixture(t, nil)
	body := company.UpdateSystemConfigRequest{SystemConfigResponse: company.ToResponse(company.DefaultSystemConfig())}

	rec, resp := f.do(t, http.MethodPut, "/api/v1/config", f.token(t, employee.RoleEmployee), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	rec, _ = f.do(t, http.MethodPut, "/api/v1/config", f.token(t, employee.RoleManager), body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/v1/config", f.token(t, employee.RoleEmployee), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ReferenceData(t *testing.T) {
	f := newRouterFixture(t, nil)
	token := f.token(t, employee.RoleEmployee)

	rec, _ := f.do(t, http.MethodGet, "/api/v1/roster", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := f.do(t, http.MethodGet, "/api/v1/employees", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 1)
}
