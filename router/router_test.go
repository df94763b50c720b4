package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finanzas/app"
	"finanzas/config"
	"finanzas/gateway"
	"finanzas/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: ":0", Mode: gin.TestMode},
		Auth:      config.AuthConfig{Username: "admin", Password: "1234", FlagKey: session.DefaultFlagKey, CookieSecret: "s", CookieMaxAge: 60},
		RateLimit: config.RateLimitConfig{LoginAttempts: 1, Window: time.Minute},
	}
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	// 指向不存在的地址，这些用例不会访问远程
	client := gateway.NewClient("http://127.0.0.1:1/exec", gateway.WithTimeout(time.Second), gateway.WithLogger(logger))
	coord := app.New(client, app.Options{Logger: logger})
	t.Cleanup(coord.Close)
	guard, err := session.NewGuard("admin", "1234", "", nil, coord.Status())
	require.NoError(t, err)
	return SetupRouter(testConfig(), Deps{App: coord, Guard: guard, Export: client})
}

func TestSetupRouter(t *testing.T) {
	r := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/view", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/session", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/gastos")
}

func TestLoginIsRateLimited(t *testing.T) {
	r := setup(t)
	login := func() int {
		req := httptest.NewRequest("POST", "/api/v1/session/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusBadRequest, login())
	assert.Equal(t, http.StatusTooManyRequests, login())
}

func TestCORSMiddleware(t *testing.T) {
	r := setup(t)

	req := httptest.NewRequest("OPTIONS", "/api/v1/view", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCookieOptions(t *testing.T) {
	opts := CookieOptions(testConfig())
	assert.Equal(t, []byte("s"), opts.Secret)
	assert.Equal(t, time.Minute, opts.MaxAge)
	assert.False(t, opts.Secure)
}
