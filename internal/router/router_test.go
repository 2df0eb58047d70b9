package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-predictive-analytics/config"
	"github.com/oksasatya/go-predictive-analytics/internal/container"
	"github.com/oksasatya/go-predictive-analytics/internal/domain/prediction"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/memory"
	"github.com/oksasatya/go-predictive-analytics/internal/infrastructure/metrics"
	"github.com/oksasatya/go-predictive-analytics/pkg/helpers"
	"github.com/oksasatya/go-predictive-analytics/pkg/validation"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	helpers.PasswordCost = bcrypt.MinCost
	validation.Init()
	os.Exit(m.Run())
}

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	c      *container.Container
}

func newApp(t *testing.T, models map[prediction.Slot]prediction.Model, tweak ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Load()
	cfg.APIPrefix = ""
	for _, fn := range tweak {
		fn(cfg)
	}
	c := &container.Container{
		Config:  cfg,
		Logger:  helpers.NewDiscardLogger(),
		Users:   memory.NewUserRepository(),
		JWT:     helpers.NewJWTManager(testSecret, 30*time.Minute),
		Models:  prediction.NewRegistry(models),
		Metrics: metrics.New(),
	}
	return &testApp{t: t, engine: NewEngine(c), c: c}
}

func (a *testApp) do(method, path, token, contentType, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) json(method, path, token, body string) *httptest.ResponseRecorder {
	return a.do(method, path, token, "application/json", body)
}

func (a *testApp) register(email, password string) {
	a.t.Helper()
	rec := a.json(http.MethodPost, "/users/", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
}

func (a *testApp) login(email, password string) string {
	a.t.Helper()
	form := url.Values{"username": {email}, "password": {password}}.Encode()
	rec := a.do(http.MethodPost, "/token", "", "application/x-www-form-urlencoded", form)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.Equal(a.t, "bearer", tok.TokenType)
	require.NotEmpty(a.t, tok.AccessToken)
	return tok.AccessToken
}

func salesModel() prediction.Model {
	return &prediction.LinearRegression{Coefficients: []float64{1, 2, 0, 0, 0, 0, 0, 0, 0, 0}, Intercept: 10}
}

func TestRegisterLoginMe(t *testing.T) {
	app := newApp(t, nil)

	rec := app.json(http.MethodPost, "/users/", "", `{"email":"u1@example.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"u1@example.com","full_name":"","company":""}`, rec.Body.String())

	token := app.login("u1@example.com", "pw123")

	rec = app.json(http.MethodGet, "/users/me/", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"u1@example.com","full_name":"","company":""}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestTokenAcceptsJSON(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")

	rec := app.json(http.MethodPost, "/token", "", `{"username":"u1@example.com","password":"pw123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestTokenRejectsBadCredentials(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")

	for _, creds := range [][2]string{{"u1@example.com", "nope"}, {"ghost@example.com", "pw123"}} {
		form := url.Values{"username": {creds[0]}, "password": {creds[1]}}.Encode()
		rec := app.do(http.MethodPost, "/token", "", "application/x-www-form-urlencoded", form)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.Contains(t, rec.Body.String(), `"code":"invalid_credentials"`)
	}

	rec := app.do(http.MethodPost, "/token", "", "application/x-www-form-urlencoded", "username=u1%40example.com")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicateRegistration(t *testing.T) {
	app := newApp(t, nil)
	rec := app.json(http.MethodPost, "/users/", "", `{"email":"u1@example.com","password":"pw123","full_name":"First"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.json(http.MethodPost, "/users/", "", `{"email":"u1@example.com","password":"other","full_name":"Second"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")

	token := app.login("u1@example.com", "pw123")
	rec = app.json(http.MethodGet, "/users/me/", token, "")
	assert.Contains(t, rec.Body.String(), `"full_name":"First"`)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	app := newApp(t, nil)
	rec := app.json(http.MethodPost, "/users/", "", `{"email":"u1@example.com","password":"`+strings.Repeat("x", 80)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"code":"invalid_payload"`)
	assert.Contains(t, rec.Body.String(), `"password":"must be at most 72 bytes"`)
}

func TestUpdateMe(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	rec := app.json(http.MethodPut, "/users/me/", token, `{"full_name":"Ada","company":"Engines","email":"evil@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"email":"u1@example.com","full_name":"Ada","company":"Engines"}`, rec.Body.String())

	rec = app.json(http.MethodPut, "/users/me/", token, `{"full_name":"","company":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"full_name":""`)

	rec = app.json(http.MethodPut, "/users/me/", token, `{"full_name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"company":"is required"`)

	rec = app.json(http.MethodPut, "/users/me/", "", `{"full_name":"Ada","company":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPredictSalesPartialPayload(t *testing.T) {
	app := newApp(t, map[prediction.Slot]prediction.Model{prediction.SlotSales: salesModel()})
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	rec := app.json(http.MethodPost, "/predict/sales", token, `{"Temperature":70,"Customers":120}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"prediction":320,"accuracy_percentage":87.5}`, rec.Body.String())

	rec = app.json(http.MethodPost, "/predict/sales", token, `{"Temperature":"hot"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Temperature":"must be a number"`)

	rec = app.json(http.MethodPost, "/predict/sales", token, `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictSalesOverflowIsBadRequest(t *testing.T) {
	app := newApp(t, map[prediction.Slot]prediction.Model{prediction.SlotSales: salesModel()})
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	rec := app.json(http.MethodPost, "/predict/sales", token, `{"Temperature":1e308,"Customers":1e308}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"code":"invalid_payload"`)
}

func TestPredictMaintenance(t *testing.T) {
	clf := &prediction.LogisticRegression{Coefficients: []float64{0, 0, 0, 0, 0, 1}, Intercept: -2, Threshold: 0.5}
	app := newApp(t, map[prediction.Slot]prediction.Model{prediction.SlotMaintenance: clf})
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	rec := app.json(http.MethodPost, "/predict/maintenance", token, `{"Vibration":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Prediction  int     `json:"prediction"`
		Probability float64 `json:"probability"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Prediction)
	assert.InDelta(t, 0.8808, res.Probability, 1e-4)

	rec = app.json(http.MethodPost, "/predict/sales", token, `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEmptySlotIsUnavailableForAnyPayload(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	for _, body := range []string{`{"Temperature":70}`, `{"Temperature":"hot"}`, `not json`, ``} {
		rec := app.json(http.MethodPost, "/predict/sales", token, body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, body)
		assert.Contains(t, rec.Body.String(), `"code":"model_unavailable"`)

		rec = app.json(http.MethodPost, "/predict/maintenance", token, body)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, body)
	}
}

func TestExpiredTokenIsUnauthenticatedEverywhere(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")

	past := helpers.NewJWTManager(testSecret, 30*time.Minute).WithClock(func() time.Time {
		return time.Now().Add(-time.Hour)
	})
	expired, _, err := past.Issue("u1@example.com")
	require.NoError(t, err)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/users/me/"},
		{http.MethodPut, "/users/me/"},
		{http.MethodPost, "/predict/sales"},
		{http.MethodPost, "/predict/maintenance"},
		{http.MethodPost, "/chat"},
	} {
		rec := app.json(route.method, route.path, expired, `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"), route.path)
	}
}

func TestTokenOfDeletedUser(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	app.c.Users.(*memory.UserRepository).Delete("u1@example.com")

	rec := app.json(http.MethodGet, "/users/me/", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatNotConfigured(t *testing.T) {
	app := newApp(t, nil)
	app.register("u1@example.com", "pw123")
	token := app.login("u1@example.com", "pw123")

	rec := app.json(http.MethodPost, "/chat", token, `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = app.json(http.MethodPost, "/chat", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSystemRoutes(t *testing.T) {
	app := newApp(t, map[prediction.Slot]prediction.Model{prediction.SlotSales: salesModel()})

	rec := app.json(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message"`)

	rec = app.json(http.MethodGet, "/healthz", "", "")
	assert.JSONEq(t, `{"status":"ok","models":{"sales":true,"maintenance":false}}`, rec.Body.String())

	app.json(http.MethodPost, "/predict/sales", "", `{}`)
	rec = app.json(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `predictive_http_requests_total{method="POST",route="/predict/sales",status="401"} 1`)
}

func TestAPIPrefix(t *testing.T) {
	app := newApp(t, nil, func(c *config.Config) { c.APIPrefix = "/api" })

	assert.Equal(t, http.StatusOK, app.json(http.MethodGet, "/api/healthz", "", "").Code)
	assert.Equal(t, http.StatusNotFound, app.json(http.MethodGet, "/healthz", "", "").Code)
}

func TestRequestIDOnErrors(t *testing.T) {
	app := newApp(t, nil)
	rec := app.json(http.MethodGet, "/users/me/", "", "")

	var body struct {
		RequestID string `json:"request_id"`
		Code      string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthenticated", body.Code)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), body.RequestID)
}
