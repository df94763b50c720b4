package api

import (
	"errors"

	"finanzas/app"
	"finanzas/forms"
	"finanzas/models"

	"github.com/gin-gonic/gin"
)

// submitCreate 绑定并提交只有新增状态的表单
func submitCreate[T any](h *ConsoleHandler, c *gin.Context, form *forms.CreateForm[T]) {
	var fields T
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Parámetros inválidos."))
		return
	}
	form.SetFields(fields)
	env, err := form.Submit(c.Request.Context())
	h.respond(c, env, err)
}

// PrefillResponse 分期还款预填结果
type PrefillResponse struct {
	Kind models.EntryKind `json:"kind"`
	View app.View         `json:"view"`
}

// ListLoans 加载借贷表
// @Summary 借贷列表
// @Tags 借贷
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/prestamos [get]
func (h *ConsoleHandler) ListLoans(c *gin.Context) {
	h.app.LoadLoans(c.Request.Context())
	Success(c, h.app.View())
}

// CreateLoan 新增借贷，服务端同时生成对应的支出或收入
// @Summary 新增借贷
// @Tags 借贷
// @Accept json
// @Produce json
// @Param request body forms.LoanFields true "借贷信息"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "校验失败"
// @Failure 422 {object} Response "业务失败"
// @Router /api/v1/prestamos [post]
func (h *ConsoleHandler) CreateLoan(c *gin.Context) {
	submitCreate(h, c, h.app.LoanForm())
}

// DeleteLoan 删除借贷
// @Summary 删除借贷
// @Tags 借贷
// @Param id path string true "借贷 ID"
// @Param confirm query bool true "确认删除"
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/prestamos/{id} [delete]
func (h *ConsoleHandler) DeleteLoan(c *gin.Context) {
	h.remove(c, h.app.DeleteLoan)
}

// PrefillInstallment 用借贷信息预填还款表单并跳转
// @Summary 登记还款
// @Description 应收借贷跳到收入页，应付借贷跳到支出页
// @Tags 借贷
// @Param id path string true "借贷 ID"
// @Success 200 {object} Response{data=PrefillResponse}
// @Failure 404 {object} Response "借贷未加载"
// @Router /api/v1/prestamos/{id}/abono [post]
func (h *ConsoleHandler) PrefillInstallment(c *gin.Context) {
	kind, err := h.app.PrefillInstallment(c.Request.Context(), models.NewRecordID(c.Param("id")))
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			NotFound(c, "Préstamo no encontrado.")
			return
		}
		InternalError(c, SafeErrorMessage(err, "No se pudo preparar el abono."))
		return
	}
	Success(c, PrefillResponse{Kind: kind, View: h.app.View()})
}

// GetGoal 加载当前储蓄目标
// @Summary 当前目标
// @Tags 目标
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/objetivo [get]
func (h *ConsoleHandler) GetGoal(c *gin.Context) {
	h.app.LoadGoal(c.Request.Context())
	Success(c, h.app.View())
}

// CreateGoal 新建储蓄目标
// @Summary 新建目标
// @Tags 目标
// @Accept json
// @Param request body forms.GoalFields true "目标信息"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "校验失败"
// @Router /api/v1/objetivo [post]
func (h *ConsoleHandler) CreateGoal(c *gin.Context) {
	submitCreate(h, c, h.app.GoalForm())
}

// CreateCategory 新增支出类别
// @Summary 新增类别
// @Tags 类别
// @Accept json
// @Param request body forms.CategoryFields true "类别"
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/categorias [post]
func (h *ConsoleHandler) CreateCategory(c *gin.Context) {
	submitCreate(h, c, h.app.CategoryForm())
}

// CreateSource 新增收入来源
// @Summary 新增来源
// @Tags 类别
// @Accept json
// @Param request body forms.SourceFields true "来源"
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/fuentes [post]
func (h *ConsoleHandler) CreateSource(c *gin.Context) {
	submitCreate(h, c, h.app.SourceForm())
}
