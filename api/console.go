package api

import (
	"net/http"
	"strings"

	"finanzas/app"
	"finanzas/gateway"
	"finanzas/models"

	"github.com/gin-gonic/gin"
)

// ConsoleHandler 控制台处理器，所有页面状态由协调器持有
type ConsoleHandler struct {
	app *app.Coordinator
}

// NewConsoleHandler 创建控制台处理器
func NewConsoleHandler(coord *app.Coordinator) *ConsoleHandler {
	return &ConsoleHandler{app: coord}
}

// respond 以最新快照作为 data 返回远程动作结果
func (h *ConsoleHandler) respond(c *gin.Context, env *gateway.Envelope, err error) {
	code := outcomeCode(env, err)
	msg := outcomeMessage(env, err)
	if code == http.StatusOK {
		SuccessWithMessage(c, msg, h.app.View())
		return
	}
	ErrorWithData(c, code, msg, h.app.View())
}

// FilterRequest 切换统计周期请求
type FilterRequest struct {
	Periodo string `json:"periodo" binding:"required" example:"mensual"`
}

// View 获取界面快照
// @Summary 界面快照
// @Description 当前页面、周期、提示区域、表单、列表与图表
// @Tags 控制台
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Failure 401 {object} Response "未登录"
// @Router /api/v1/view [get]
func (h *ConsoleHandler) View(c *gin.Context) {
	Success(c, h.app.View())
}

// SetFilter 切换统计周期
// @Summary 切换统计周期
// @Tags 控制台
// @Accept json
// @Produce json
// @Param request body FilterRequest true "周期"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "周期无效"
// @Router /api/v1/filter [put]
func (h *ConsoleHandler) SetFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Parámetros inválidos."))
		return
	}
	period, err := models.ParsePeriodFilter(req.Periodo)
	if err != nil {
		BadRequest(c, "Periodo no válido.")
		return
	}
	h.app.SetFilter(c.Request.Context(), period)
	Success(c, h.app.View())
}

// Navigate 切换页面
// @Summary 切换页面
// @Description 离开的页面未完成的加载会被丢弃，进入仪表盘时刷新
// @Tags 控制台
// @Produce json
// @Param name path string true "页面" Enums(dashboard, gastos, ingresos, prestamos, objetivos, categorias, configuracion)
// @Success 200 {object} Response{data=app.View}
// @Failure 404 {object} Response "页面不存在"
// @Router /api/v1/sections/{name} [post]
func (h *ConsoleHandler) Navigate(c *gin.Context) {
	section, err := app.ParseSection(c.Param("name"))
	if err != nil {
		NotFound(c, "Sección no encontrada.")
		return
	}
	h.app.Navigate(c.Request.Context(), section)
	Success(c, h.app.View())
}

// RefreshDashboard 重新计算仪表盘
// @Summary 刷新仪表盘
// @Tags 控制台
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/dashboard/refresh [post]
func (h *ConsoleHandler) RefreshDashboard(c *gin.Context) {
	h.app.RefreshDashboard(c.Request.Context())
	Success(c, h.app.View())
}

// Reload 重新加载类别、来源、目标与借贷
// @Summary 重新加载初始数据
// @Tags 控制台
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/reload [post]
func (h *ConsoleHandler) Reload(c *gin.Context) {
	h.app.LoadInitialData(c.Request.Context())
	Success(c, h.app.View())
}

// ConfigAction 初始化或重置远程数据库
// @Summary 初始化/重置
// @Description 重置会清空所有数据，必须携带 confirm=true
// @Tags 配置
// @Produce json
// @Param action path string true "动作" Enums(iniciar, resetear)
// @Param confirm query bool false "确认重置"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "未确认"
// @Failure 409 {object} Response "正在执行"
// @Router /api/v1/admin/{action} [post]
func (h *ConsoleHandler) ConfigAction(c *gin.Context) {
	action := strings.ToLower(c.Param("action"))
	if action != gateway.ActionInit && action != gateway.ActionReset {
		NotFound(c, "Acción no encontrada.")
		return
	}
	if action == gateway.ActionReset && !confirmed(c) {
		BadRequest(c, "Confirme el reinicio: se borrarán todos los datos.")
		return
	}
	env, err := h.app.ConfigAction(c.Request.Context(), action)
	h.respond(c, env, err)
}

func confirmed(c *gin.Context) bool {
	v := strings.ToLower(c.Query("confirm"))
	return v == "true" || v == "1" || v == "si" || v == "sí"
}
