package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// TextTooManyAttempts 登录限流提示
const TextTooManyAttempts = "Demasiados intentos de inicio de sesión, intente más tarde."

// attempts 单个 IP 窗口内的尝试时间
type attempts []time.Time

// prune 丢弃 cutoff 之前的记录
func (a attempts) prune(cutoff time.Time) attempts {
	kept := a[:0]
	for _, t := range a {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu    sync.Mutex
		store = make(map[string]attempts)
	)
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, a := range store {
				if a = a.prune(cutoff); len(a) == 0 {
					delete(store, ip)
				} else {
					store[ip] = a
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		a := store[ip].prune(now.Add(-window))
		if len(a) >= maxAttempts {
			store[ip] = a
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": TextTooManyAttempts,
			})
			return
		}
		store[ip] = append(a, now)
		mu.Unlock()
		c.Next()
	}
}
