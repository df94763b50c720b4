package api

import (
	"context"
	"errors"

	"finanzas/app"
	"finanzas/gateway"
	"finanzas/models"

	"github.com/gin-gonic/gin"
)

func (h *ConsoleHandler) list(c *gin.Context, kind models.EntryKind) {
	if kind == models.KindIncome {
		h.app.LoadIncomes(c.Request.Context())
	} else {
		h.app.LoadExpenses(c.Request.Context())
	}
	Success(c, h.app.View())
}

func (h *ConsoleHandler) submit(c *gin.Context, kind models.EntryKind) {
	var fields models.EntryFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, SafeErrorMessage(err, "Parámetros inválidos."))
		return
	}
	form := h.app.EntryForm(kind)
	form.SetFields(fields)
	env, err := form.Submit(c.Request.Context())
	h.respond(c, env, err)
}

func (h *ConsoleHandler) edit(c *gin.Context, kind models.EntryKind) {
	id := models.NewRecordID(c.Param("id"))
	if err := h.app.EditEntry(kind, id); err != nil {
		if errors.Is(err, app.ErrNotFound) {
			NotFound(c, "Registro no encontrado.")
			return
		}
		InternalError(c, SafeErrorMessage(err, "No se pudo editar el registro."))
		return
	}
	Success(c, h.app.View())
}

func (h *ConsoleHandler) cancel(c *gin.Context, kind models.EntryKind) {
	h.app.EntryForm(kind).ExitEditMode()
	Success(c, h.app.View())
}

func (h *ConsoleHandler) remove(c *gin.Context, del func(context.Context, models.RecordID) (*gateway.Envelope, error)) {
	if !confirmed(c) {
		BadRequest(c, "Confirme la eliminación.")
		return
	}
	id := models.NewRecordID(c.Param("id"))
	if id.IsZero() {
		BadRequest(c, "ID no válido.")
		return
	}
	env, err := del(c.Request.Context(), id)
	h.respond(c, env, err)
}

// ListExpenses 加载支出列表
// @Summary 支出列表
// @Tags 支出
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/gastos [get]
func (h *ConsoleHandler) ListExpenses(c *gin.Context) { h.list(c, models.KindExpense) }

// SubmitExpense 保存支出，编辑状态下为更新
// @Summary 保存支出
// @Description 新增状态发送 agregarGasto，编辑状态发送 actualizarGasto
// @Tags 支出
// @Accept json
// @Produce json
// @Param request body models.EntryFields true "表单字段，label 为类别"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "校验失败"
// @Failure 409 {object} Response "正在提交"
// @Failure 422 {object} Response "业务失败"
// @Failure 502 {object} Response "连接失败"
// @Router /api/v1/gastos [post]
func (h *ConsoleHandler) SubmitExpense(c *gin.Context) { h.submit(c, models.KindExpense) }

// EditExpense 进入支出编辑状态
// @Summary 编辑支出
// @Tags 支出
// @Produce json
// @Param id path string true "记录 ID"
// @Success 200 {object} Response{data=app.View}
// @Failure 404 {object} Response "未加载该记录"
// @Router /api/v1/gastos/{id}/editar [post]
func (h *ConsoleHandler) EditExpense(c *gin.Context) { h.edit(c, models.KindExpense) }

// CancelExpense 退出支出编辑状态
// @Summary 取消编辑支出
// @Tags 支出
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/gastos/cancelar [post]
func (h *ConsoleHandler) CancelExpense(c *gin.Context) { h.cancel(c, models.KindExpense) }

// DeleteExpense 删除支出
// @Summary 删除支出
// @Tags 支出
// @Produce json
// @Param id path string true "记录 ID"
// @Param confirm query bool true "确认删除"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "未确认"
// @Router /api/v1/gastos/{id} [delete]
func (h *ConsoleHandler) DeleteExpense(c *gin.Context) { h.remove(c, h.app.DeleteExpense) }

// ListIncomes 加载收入列表
// @Summary 收入列表
// @Tags 收入
// @Produce json
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/ingresos [get]
func (h *ConsoleHandler) ListIncomes(c *gin.Context) { h.list(c, models.KindIncome) }

// SubmitIncome 保存收入，编辑状态下为更新
// @Summary 保存收入
// @Tags 收入
// @Accept json
// @Produce json
// @Param request body models.EntryFields true "表单字段，label 为来源"
// @Success 200 {object} Response{data=app.View}
// @Failure 400 {object} Response "校验失败"
// @Failure 422 {object} Response "业务失败"
// @Router /api/v1/ingresos [post]
func (h *ConsoleHandler) SubmitIncome(c *gin.Context) { h.submit(c, models.KindIncome) }

// EditIncome 进入收入编辑状态
// @Summary 编辑收入
// @Tags 收入
// @Param id path string true "记录 ID"
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/ingresos/{id}/editar [post]
func (h *ConsoleHandler) EditIncome(c *gin.Context) { h.edit(c, models.KindIncome) }

// CancelIncome 退出收入编辑状态
// @Summary 取消编辑收入
// @Tags 收入
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/ingresos/cancelar [post]
func (h *ConsoleHandler) CancelIncome(c *gin.Context) { h.cancel(c, models.KindIncome) }

// DeleteIncome 删除收入
// @Summary 删除收入
// @Tags 收入
// @Param id path string true "记录 ID"
// @Param confirm query bool true "确认删除"
// @Success 200 {object} Response{data=app.View}
// @Router /api/v1/ingresos/{id} [delete]
func (h *ConsoleHandler) DeleteIncome(c *gin.Context) { h.remove(c, h.app.DeleteIncome) }
