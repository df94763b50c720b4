package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"finanzas/config"
	"finanzas/export"
	"finanzas/models"

	"github.com/gin-gonic/gin"
)

// ExportHandler 导出处理器，直接读取远程表格，不经过界面状态
type ExportHandler struct {
	src export.Source
	now func() time.Time
}

// NewExportHandler 创建导出处理器
func NewExportHandler(src export.Source) *ExportHandler {
	return &ExportHandler{src: src, now: time.Now}
}

func exportStatus(err error) (int, string) {
	if errors.Is(err, models.ErrInvalidAmount) {
		return http.StatusUnprocessableEntity, SafeErrorMessage(err, "Los datos contienen montos no válidos.")
	}
	return http.StatusBadGateway, SafeErrorMessage(err, "Error al obtener los datos.")
}

func attachment(c *gin.Context, contentType, filename string) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s; filename*=UTF-8''%s", filename, url.PathEscape(filename)))
}

// ExportCSV 导出支出或收入为 CSV
// @Summary 导出 CSV
// @Tags 导出
// @Produce text/csv
// @Param tipo query string false "gasto 或 ingreso" Enums(gasto, ingreso) default(gasto)
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "类型无效"
// @Failure 502 {object} Response "远程读取失败"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	kind := models.EntryKind(c.DefaultQuery("tipo", string(models.KindExpense)))
	if kind != models.KindExpense && kind != models.KindIncome {
		BadRequest(c, "Tipo no válido.")
		return
	}

	entries, err := export.Entries(c.Request.Context(), h.src, kind)
	if err != nil {
		config.LogError(config.GetLogger(), "api", "ExportCSV", "读取远程数据失败", kind, err)
		code, msg := exportStatus(err)
		Error(c, code, msg)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, kind, entries); err != nil {
		code, msg := exportStatus(err)
		Error(c, code, msg)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", kind, h.now().Format("20060102"))
	attachment(c, "text/csv; charset=utf-8", filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出支出、收入与借贷为 Excel
// @Summary 导出 Excel
// @Description 三张工作表，每张末尾一行合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Excel 文件"
// @Failure 422 {object} Response "金额无效"
// @Failure 502 {object} Response "远程读取失败"
// @Router /api/v1/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	f, err := export.Fetch(c.Request.Context(), h.src)
	if err != nil {
		config.LogError(config.GetLogger(), "api", "ExportExcel", "生成工作簿失败", nil, err)
		code, msg := exportStatus(err)
		Error(c, code, msg)
		return
	}
	defer f.Close()

	attachment(c, export.ContentType, export.Filename(h.now().Format("20060102")))
	if err := f.Write(c.Writer); err != nil {
		config.LogError(config.GetLogger(), "api", "ExportExcel", "写出工作簿失败", nil, err)
	}
}
