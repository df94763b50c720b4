package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"finanzas/localstore"
	"finanzas/status"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestGuard_Login(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	rep := status.NewReporter(nil)
	g, err := NewGuard("admin", "1234", "", store, rep)
	require.NoError(t, err)
	assert.Equal(t, DefaultFlagKey, g.FlagKey())
	assert.False(t, g.IsAuthenticated(ctx))

	// 密码错误
	ok, err := g.Login(ctx, "admin", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, g.IsAuthenticated(ctx))
	n := rep.Get(status.RegionLogin)
	assert.Equal(t, status.LevelError, n.Level)
	assert.Equal(t, TextBadCredentials, n.Message)

	// 用户名错误
	ok, _ = g.Login(ctx, "root", "1234")
	assert.False(t, ok)

	ok, err = g.Login(ctx, "admin", "1234")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, g.IsAuthenticated(ctx))
	assert.Equal(t, "true", store.data[DefaultFlagKey])
	// 登录成功后错误提示隐藏
	n = rep.Get(status.RegionLogin)
	assert.False(t, n.Visible)
	assert.Empty(t, n.Message)

	require.NoError(t, g.Logout(ctx))
	assert.False(t, g.IsAuthenticated(ctx))
}

func TestGuard_FlagMustBeTrue(t *testing.T) {
	ctx := context.Background()
	store := &memStore{data: map[string]string{"k": "yes"}}
	g, err := NewGuard("admin", "1234", "k", store, nil)
	require.NoError(t, err)
	assert.False(t, g.IsAuthenticated(ctx))
}

func TestGuard_LocalStore(t *testing.T) {
	ctx := context.Background()
	s, err := localstore.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	g, err := NewGuard("admin", "1234", "", s, nil)
	require.NoError(t, err)
	ok, err := g.Login(ctx, "admin", "1234")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, g.IsAuthenticated(ctx))
}

func TestFlagToken(t *testing.T) {
	secret := []byte("test-cookie-secret")
	token, err := GenerateFlagToken(FlagValue, secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseFlagToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, FlagValue, claims.Flag)

	_, err = ParseFlagToken(token, []byte("other"))
	assert.Error(t, err)
	_, err = ParseFlagToken("not.a.valid.jwt", secret)
	assert.Error(t, err)

	expired, err := GenerateFlagToken(FlagValue, secret, -time.Minute)
	require.NoError(t, err)
	// ttl 为负时不设置过期时间
	_, err = ParseFlagToken(expired, secret)
	assert.NoError(t, err)
}

func TestCookieStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	opts := CookieOptions{Secret: []byte("s3cret"), MaxAge: time.Hour}
	g, err := NewGuard("admin", "1234", "", nil, nil)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/login", func(c *gin.Context) {
		ok, err := g.With(NewCookieStore(c, opts)).Login(c, "admin", "1234")
		if err != nil || !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	router.GET("/status", func(c *gin.Context) {
		if g.With(NewCookieStore(c, opts)).IsAuthenticated(c) {
			c.String(http.StatusOK, "in")
			return
		}
		c.String(http.StatusOK, "out")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultFlagKey, cookies[0].Name)
	assert.NotEqual(t, FlagValue, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "in", w.Body.String())

	// 伪造的明文标记不被接受
	req = httptest.NewRequest(http.MethodGet, "/status", nil)
	req.AddCookie(&http.Cookie{Name: DefaultFlagKey, Value: "true"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "out", w.Body.String())
}

func TestCookieStore_PlainFlag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: DefaultFlagKey, Value: "true"})

	s := NewCookieStore(c, CookieOptions{})
	v, ok, err := s.Get(context.Background(), DefaultFlagKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)
}
