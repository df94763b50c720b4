package middleware

import (
	"net/http"

	"finanzas/session"

	"github.com/gin-gonic/gin"
)

// TextLoginRequired 未登录提示
const TextLoginRequired = "Inicie sesión para continuar."

// SessionGate 未登录时拒绝请求
// 只是界面门禁：远程表格接口本身不校验登录
func SessionGate(guard *session.Guard, opts session.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		g := guard.With(session.NewCookieStore(c, opts))
		if !g.IsAuthenticated(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": TextLoginRequired,
			})
			return
		}
		c.Next()
	}
}
