package api

import (
	"net/http"

	"finanzas/app"
	"finanzas/config"
	"finanzas/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler 登录处理器
type SessionHandler struct {
	guard  *session.Guard
	cookie session.CookieOptions
	app    *app.Coordinator
}

// NewSessionHandler 创建登录处理器
func NewSessionHandler(guard *session.Guard, cookie session.CookieOptions, coord *app.Coordinator) *SessionHandler {
	return &SessionHandler{guard: guard, cookie: cookie, app: coord}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"1234"`
}

// SessionStatus 登录状态
type SessionStatus struct {
	Authenticated bool `json:"authenticated"`
}

func (h *SessionHandler) guardFor(c *gin.Context) *session.Guard {
	return h.guard.With(session.NewCookieStore(c, h.cookie))
}

// Login 登录
// @Summary 登录
// @Description 固定账号登录，成功后写入会话 cookie 并加载初始数据
// @Tags 会话
// @Accept json
// @Produce json
// @Param request body LoginRequest true "账号密码"
// @Success 200 {object} Response{data=app.View}
// @Failure 401 {object} Response "账号或密码错误"
// @Failure 429 {object} Response "尝试过于频繁"
// @Router /api/v1/session/login [post]
func (h *SessionHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Parámetros inválidos."))
		return
	}
	ok, err := h.guardFor(c).Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		config.LogError(config.GetLogger(), "api", "Login", "保存登录标记失败", nil, err)
		InternalError(c, SafeErrorMessage(err, "No se pudo iniciar sesión."))
		return
	}
	if !ok {
		Unauthorized(c, session.TextBadCredentials)
		return
	}
	h.app.LoadInitialData(c.Request.Context())
	SuccessWithMessage(c, "Sesión iniciada.", h.app.View())
}

// Logout 退出登录
// @Summary 退出登录
// @Tags 会话
// @Produce json
// @Success 200 {object} Response
// @Router /api/v1/session/logout [post]
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.guardFor(c).Logout(c.Request.Context()); err != nil {
		InternalError(c, SafeErrorMessage(err, "No se pudo cerrar sesión."))
		return
	}
	h.app.Reset()
	SuccessWithMessage(c, "Sesión cerrada.", nil)
}

// Status 是否已登录
// @Summary 登录状态
// @Tags 会话
// @Produce json
// @Success 200 {object} Response{data=SessionStatus}
// @Router /api/v1/session [get]
func (h *SessionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    SessionStatus{Authenticated: h.guardFor(c).IsAuthenticated(c.Request.Context())},
	})
}
