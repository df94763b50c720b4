package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"finanzas/models"
)

// LabelHeader 类别或来源列标题
func LabelHeader(kind models.EntryKind) string {
	if kind == models.KindIncome {
		return "Fuente"
	}
	return "Categoría"
}

// Entries 读取一种流水并转换为统一视图
func Entries(ctx context.Context, src Source, kind models.EntryKind) ([]models.Entry, error) {
	switch kind {
	case models.KindExpense:
		expenses, err := src.Expenses(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.Entry, len(expenses))
		for i, e := range expenses {
			out[i] = e.Entry()
		}
		return out, nil
	case models.KindIncome:
		incomes, err := src.Incomes(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.Entry, len(incomes))
		for i, in := range incomes {
			out[i] = in.Entry()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("export: unknown entry kind %q", kind)
	}
}

// WriteCSV 以 CSV 写出支出或收入，带 BOM 以便 Excel 识别 UTF-8
func WriteCSV(w io.Writer, kind models.EntryKind, entries []models.Entry) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"ID", "Fecha", LabelHeader(kind), "Descripción", "Monto"}); err != nil {
		return err
	}
	for _, e := range entries {
		amount, ok := e.Monto.Decimal()
		if !ok {
			return &models.InvalidAmountError{Field: "monto", Record: e.ID.String(), Raw: e.Monto.Raw()}
		}
		row := []string{e.ID.String(), e.Fecha, e.Label, e.Descripcion, amount.StringFixed(2)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
