package export

import (
	"context"
	"fmt"

	"finanzas/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 工作表名称
const (
	SheetExpenses = "Gastos"
	SheetIncomes  = "Ingresos"
	SheetLoans    = "Préstamos"
)

// ContentType xlsx 的 MIME 类型
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Source 导出需要的远程读取
type Source interface {
	Expenses(ctx context.Context) ([]models.Expense, error)
	Incomes(ctx context.Context) ([]models.Income, error)
	Loans(ctx context.Context) (models.LoanBook, error)
}

// Fetch 读取数据并生成工作簿
func Fetch(ctx context.Context, src Source) (*excelize.File, error) {
	expenses, err := src.Expenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: expenses: %w", err)
	}
	incomes, err := src.Incomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: incomes: %w", err)
	}
	book, err := src.Loans(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: loans: %w", err)
	}
	return Workbook(expenses, incomes, book)
}

type styles struct {
	header, data, summary int
}

func border() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}

func newStyles(f *excelize.File) (styles, error) {
	var s styles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border(),
	}); err != nil {
		return s, err
	}
	if s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border(),
	}); err != nil {
		return s, err
	}
	s.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border(),
	})
	return s, err
}

// Workbook 生成三张表：支出、收入、借贷，每张表末尾一行合计
// 金额无效时返回 models.ErrInvalidAmount，不写入 0
func Workbook(expenses []models.Expense, incomes []models.Income, book models.LoanBook) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		f.Close()
		return nil, err
	}
	entries := make([]models.Entry, len(expenses))
	for i, e := range expenses {
		entries[i] = e.Entry()
	}
	if err := writeEntries(f, st, SheetExpenses, LabelHeader(models.KindExpense), entries); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SheetIncomes); err != nil {
		f.Close()
		return nil, err
	}
	entries = make([]models.Entry, len(incomes))
	for i, in := range incomes {
		entries[i] = in.Entry()
	}
	if err := writeEntries(f, st, SheetIncomes, LabelHeader(models.KindIncome), entries); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(SheetLoans); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeLoans(f, st, book); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeHeader(f *excelize.File, st styles, sheet string, headers []string, widths []float64) error {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.header); err != nil {
			return err
		}
		if i < len(widths) {
			if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeEntries(f *excelize.File, st styles, sheet, labelHeader string, entries []models.Entry) error {
	headers := []string{"ID", "Fecha", labelHeader, "Descripción", "Monto"}
	if err := writeHeader(f, st, sheet, headers, []float64{12, 14, 18, 36, 14}); err != nil {
		return err
	}

	total := decimal.Zero
	for i, e := range entries {
		amount, ok := e.Monto.Decimal()
		if !ok {
			return &models.InvalidAmountError{Field: "monto", Record: e.ID.String(), Raw: e.Monto.Raw()}
		}
		row := i + 2
		values := []any{e.ID.String(), e.Fecha, e.Label, e.Descripcion, amount.Round(2).InexactFloat64()}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), st.data); err != nil {
			return err
		}
		total = total.Add(amount)
	}

	summaryRow := len(entries) + 2
	values := []any{fmt.Sprintf("%d registros", len(entries)), "", "", "Total", total.Round(2).InexactFloat64()}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", summaryRow), &values); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), st.summary)
}

func writeLoans(f *excelize.File, st styles, book models.LoanBook) error {
	headers := []string{"ID", "Tipo", "Contraparte", "Fecha Inicio", "Monto Inicial", "Saldo Actual", "Cuota Mensual", "Tasa", "Estado"}
	if err := writeHeader(f, st, SheetLoans, headers, []float64{10, 12, 22, 14, 14, 14, 14, 8, 12}); err != nil {
		return err
	}
	loans := book.All()
	for i, l := range loans {
		inicial, ok := l.MontoInicial.Decimal()
		if !ok {
			return &models.InvalidAmountError{Field: "montoInicial", Record: l.ID.String(), Raw: l.MontoInicial.Raw()}
		}
		saldo, ok := l.SaldoActual.Decimal()
		if !ok {
			return &models.InvalidAmountError{Field: "saldoActual", Record: l.ID.String(), Raw: l.SaldoActual.Raw()}
		}
		row := i + 2
		values := []any{
			l.ID.String(), l.Tipo, l.Contraparte, l.FechaInicio,
			inicial.InexactFloat64(), saldo.InexactFloat64(),
			l.CuotaMensual.OrZero().InexactFloat64(), l.Tasa.String(), l.Estado,
		}
		if err := f.SetSheetRow(SheetLoans, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetLoans, fmt.Sprintf("A%d", row), fmt.Sprintf("I%d", row), st.data); err != nil {
			return err
		}
	}

	receivable, payable, err := book.Totals()
	if err != nil {
		return err
	}
	summaryRow := len(loans) + 2
	values := []any{"Por Cobrar", receivable.InexactFloat64(), "Por Pagar", payable.InexactFloat64()}
	if err := f.SetSheetRow(SheetLoans, fmt.Sprintf("A%d", summaryRow), &values); err != nil {
		return err
	}
	return f.SetCellStyle(SheetLoans, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("I%d", summaryRow), st.summary)
}

// Filename 导出文件名
func Filename(date string) string {
	return fmt.Sprintf("finanzas_%s.xlsx", date)
}
