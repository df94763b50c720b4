package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// FlagClaims 签名后的登录标记
type FlagClaims struct {
	Flag string `json:"flag"`
	jwt.RegisteredClaims
}

// CookieOptions cookie 存储选项
type CookieOptions struct {
	// Secret 非空时标记以 HS256 签名；为空时写入明文 "true"
	Secret []byte
	MaxAge time.Duration
	Secure bool
}

// CookieStore 网页端的标记存储，绑定到单个请求
type CookieStore struct {
	c    *gin.Context
	opts CookieOptions
}

// NewCookieStore 绑定当前请求
func NewCookieStore(c *gin.Context, opts CookieOptions) *CookieStore {
	return &CookieStore{c: c, opts: opts}
}

func (s *CookieStore) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) || raw == "" {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if len(s.opts.Secret) == 0 {
		return raw, true, nil
	}
	claims, err := ParseFlagToken(raw, s.opts.Secret)
	if err != nil {
		// 签名无效视为未登录
		return "", false, nil
	}
	return claims.Flag, true, nil
}

func (s *CookieStore) Set(ctx context.Context, key, value string) error {
	v := value
	if len(s.opts.Secret) > 0 {
		token, err := GenerateFlagToken(value, s.opts.Secret, s.opts.MaxAge)
		if err != nil {
			return err
		}
		v = token
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, v, int(s.opts.MaxAge.Seconds()), "/", "", s.opts.Secure, true)
	return nil
}

func (s *CookieStore) Remove(ctx context.Context, key string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, "", -1, "/", "", s.opts.Secure, true)
	return nil
}

// GenerateFlagToken 生成签名标记，ttl 为 0 时不过期
func GenerateFlagToken(flag string, secret []byte, ttl time.Duration) (string, error) {
	claims := FlagClaims{
		Flag: flag,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   "finanzas",
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseFlagToken 校验签名与过期时间
func ParseFlagToken(tokenString string, secret []byte) (*FlagClaims, error) {
	claims := &FlagClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
