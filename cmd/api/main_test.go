package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gfi/internal/config"
	"gfi/internal/domain/assessment"
	"gfi/internal/domain/lead"
	"gfi/internal/domain/snapshot"
	"gfi/internal/middleware"
	"gfi/internal/notify"
	jwtsvc "gfi/internal/pkg/jwt"
)

const testSecret = "e2e-secret"

type E2ETestSuite struct {
	router   *gin.Engine
	notifier *notify.Service
	sender   *countingSender
	jwt      *jwtsvc.Service
}

type TestResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorDetail    `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type countingSender struct {
	calls atomic.Int32
}

func (s *countingSender) Send(_ context.Context, _ notify.Message, _ *time.Time) (string, error) {
	n := s.calls.Add(1)
	return fmt.Sprintf("msg-%d", n), nil
}

var suiteSeq atomic.Int32

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:         "test",
		ListenAddr:     ":0",
		LogLevel:       "error",
		ResendAPIKey:   "re_test",
		MailFrom:       "GFI <gfi@example.com>",
		AdminJWTSecret: testSecret,
		AdminTokenTTL:  time.Hour,
		FollowUpDelay:  48 * time.Hour,
		ShutdownPeriod: time.Second,
	}
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.DatabaseURL = fmt.Sprintf("file:e2e_%d?mode=memory&cache=shared", suiteSeq.Add(1))
	logger := zap.NewNop()

	store, leads, closeStore := openStore(context.Background(), cfg, logger)
	require.NotNil(t, leads, "sqlite store should open")

	presets, err := config.LoadPresets("")
	require.NoError(t, err)

	sender := &countingSender{}
	notifier := notify.NewService(sender, logger, notify.WithResultHook(assessment.DispatchRecorder(store, logger)))
	t.Cleanup(func() {
		notifier.Wait()
		closeStore()
	})

	svc := assessment.NewService(assessment.Deps{
		Presets:       presets,
		Links:         snapshot.Links{Diagnostic: "https://pay.example.com/diagnostic"},
		Store:         store,
		Notifier:      notifier,
		FollowUpDelay: cfg.FollowUpDelay,
		Logger:        logger,
	})

	return &E2ETestSuite{
		router:   newRouter(cfg, logger, presets, svc, leads),
		notifier: notifier,
		sender:   sender,
		jwt:      jwtsvc.New(testSecret, time.Hour),
	}
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, TestResponse) {
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

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var resp TestResponse
	if rr.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	}
	return rr, resp
}

func (s *E2ETestSuite) adminToken(t *testing.T) string {
	t.Helper()
	token, err := s.jwt.GenerateToken("ops@example.com", middleware.RoleAdmin)
	require.NoError(t, err)
	return token
}

func submission() map[string]any {
	return map[string]any{
		"name":         "Dana Reyes",
		"email":        "dana@example.com",
		"organization": "Northwind",
		"role":         "COO",
		"intake": map[string]any{
			"organization_size":   "large",
			"industry":            "finance",
			"process_delay_hours": 120,
			"affected_people":     250,
			"hourly_rate":         85,
			"role_type":           "manager",
		},
	}
}

func TestE2E_SubmitLifecycle(t *testing.T) {
	s := setupTestSuite(t)

	rr, resp := s.makeRequest(t, http.MethodPost, "/api/v1/assessments/submit", submission(), "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.True(t, resp.Success)

	var res assessment.Result
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.NotEmpty(t, res.PublicID)
	assert.True(t, res.Persisted.OK, res.Persisted.Message)
	assert.True(t, res.Notified.OK, res.Notified.Message)
	assert.True(t, res.FollowUp.OK)
	assert.NotEmpty(t, res.FollowUp.ScheduledAt)
	assert.Equal(t, "critical", string(res.Risk.Tier))
	assert.InDelta(t, 15_300_000.0, res.Estimate.TotalFrictionCost, 0.01)
	assert.True(t, bytes.HasPrefix(res.Snapshot.PDF, []byte("%PDF-")))

	t.Run("snapshot download matches submission", func(t *testing.T) {
		rr, _ := s.makeRequest(t, http.MethodGet, "/api/v1/assessments/"+res.PublicID+"/snapshot", nil, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Contains(t, rr.Header().Get("Content-Disposition"), res.Snapshot.Filename)
		assert.True(t, bytes.Equal(res.Snapshot.PDF, rr.Body.Bytes()))
	})

	t.Run("dispatch log records both e-mails", func(t *testing.T) {
		s.notifier.Wait()
		assert.Equal(t, int32(2), s.sender.calls.Load())

		rr, resp := s.makeRequest(t, http.MethodGet, "/api/v1/assessments/"+res.PublicID+"/dispatches", nil, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var got assessment.DispatchesResponse
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		require.Len(t, got.Dispatches, 2)

		kinds := []lead.DispatchKind{got.Dispatches[0].Kind, got.Dispatches[1].Kind}
		assert.ElementsMatch(t, []lead.DispatchKind{lead.DispatchImmediate, lead.DispatchFollowUp}, kinds)
		for _, d := range got.Dispatches {
			assert.True(t, d.OK)
			assert.NotEmpty(t, d.ProviderID)
		}
	})

	t.Run("admin sees the lead", func(t *testing.T) {
		token := s.adminToken(t)

		rr, resp := s.makeRequest(t, http.MethodGet, "/api/v1/admin/leads?tier=critical", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		var list lead.LeadListResponse
		require.NoError(t, json.Unmarshal(resp.Data, &list))
		assert.Equal(t, int64(1), list.Total)
		require.Len(t, list.Leads, 1)
		assert.Equal(t, res.PublicID, list.Leads[0].PublicID)

		rr, resp = s.makeRequest(t, http.MethodGet, "/api/v1/admin/leads/stats", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		var stats lead.StatsResponse
		require.NoError(t, json.Unmarshal(resp.Data, &stats))
		assert.Equal(t, int64(1), stats.Total)
		assert.Equal(t, int64(1), stats.ByTier["critical"])
		assert.Equal(t, int64(0), stats.ByTier["low"])
	})
}

func TestE2E_AdminRequiresToken(t *testing.T) {
	s := setupTestSuite(t)

	rr, resp := s.makeRequest(t, http.MethodGet, "/api/v1/admin/leads", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "AUTH_HEADER_MISSING", resp.Error.Code)

	other, err := jwtsvc.New(testSecret, time.Hour).GenerateToken("someone", "viewer")
	require.NoError(t, err)
	rr, _ = s.makeRequest(t, http.MethodGet, "/api/v1/admin/leads", nil, other)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestE2E_Healthz(t *testing.T) {
	s := setupTestSuite(t)

	rr, resp := s.makeRequest(t, http.MethodGet, "/healthz", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["persistence"])
	assert.Equal(t, true, body["notification"])
}

func TestE2E_WithoutStorage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	logger := zap.NewNop()

	store, leads, closeStore := openStore(context.Background(), cfg, logger)
	defer closeStore()
	assert.Nil(t, leads)
	assert.IsType(t, lead.DisabledSink{}, store)

	presets, err := config.LoadPresets("")
	require.NoError(t, err)
	notifier := notify.NewService(notify.Disabled{}, logger)
	svc := assessment.NewService(assessment.Deps{
		Presets:       presets,
		Store:         store,
		Notifier:      notifier,
		FollowUpDelay: time.Hour,
		Logger:        logger,
	})
	s := &E2ETestSuite{router: newRouter(cfg, logger, presets, svc, leads), jwt: jwtsvc.New(testSecret, time.Hour)}

	rr, resp := s.makeRequest(t, http.MethodPost, "/api/v1/assessments/submit", submission(), "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var res assessment.Result
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.False(t, res.Persisted.OK)
	assert.False(t, res.Notified.OK)
	assert.NotEmpty(t, res.Snapshot.PDF)

	rr, resp = s.makeRequest(t, http.MethodGet, "/api/v1/admin/leads", nil, s.adminToken(t))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "STORAGE_UNAVAILABLE", resp.Error.Code)

	notifier.Wait()
}
