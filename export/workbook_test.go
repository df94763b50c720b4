package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"finanzas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	expenses []models.Expense
	incomes  []models.Income
	book     models.LoanBook
	err      error
}

func (f fakeSource) Expenses(ctx context.Context) ([]models.Expense, error) { return f.expenses, f.err }
func (f fakeSource) Incomes(ctx context.Context) ([]models.Income, error)   { return f.incomes, nil }
func (f fakeSource) Loans(ctx context.Context) (models.LoanBook, error)     { return f.book, nil }

func sample() fakeSource {
	return fakeSource{
		expenses: []models.Expense{
			{ID: models.IntID(1), Fecha: "2024-05-01", Categoria: "Comida", Monto: models.ParseAmount("12.345"), Descripcion: "Almuerzo"},
			{ID: models.IntID(2), Fecha: "2024-05-02", Categoria: "Ocio", Monto: models.ParseAmount("7.655")},
		},
		incomes: []models.Income{
			{ID: models.NewRecordID("i-1"), Fecha: "2024-05-01", Fuente: "Salario", Monto: models.ParseAmount("1500")},
		},
		book: models.LoanBook{
			Cobrar: []models.Loan{{ID: models.IntID(3), Tipo: models.LoanLent, Contraparte: "Ana",
				MontoInicial: models.ParseAmount("500"), SaldoActual: models.ParseAmount("200"), Estado: models.LoanStatusActive}},
		},
	}
}

func TestFetch_Workbook(t *testing.T) {
	f, err := Fetch(context.Background(), sample())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetExpenses, SheetIncomes, SheetLoans}, f.GetSheetList())

	v, err := f.GetCellValue(SheetExpenses, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Comida", v)

	v, err = f.GetCellValue(SheetExpenses, "E4")
	require.NoError(t, err)
	assert.Equal(t, "20", v)

	v, err = f.GetCellValue(SheetIncomes, "A2")
	require.NoError(t, err)
	assert.Equal(t, "i-1", v)

	v, err = f.GetCellValue(SheetLoans, "B3")
	require.NoError(t, err)
	assert.Equal(t, "200", v)

	// 可写出并重新读取
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	g, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer g.Close()
	assert.Len(t, g.GetSheetList(), 3)
}

func TestWorkbook_InvalidAmount(t *testing.T) {
	src := sample()
	src.expenses = append(src.expenses, models.Expense{ID: models.IntID(9), Monto: models.ParseAmount("")})
	_, err := Fetch(context.Background(), src)
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

func TestFetch_SourceError(t *testing.T) {
	src := sample()
	src.err = errors.New("offline")
	_, err := Fetch(context.Background(), src)
	assert.ErrorContains(t, err, "offline")
}

func TestWriteCSV(t *testing.T) {
	src := sample()
	entries, err := Entries(context.Background(), src, models.KindExpense)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, models.KindExpense, entries))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"))
	assert.Contains(t, out, "ID,Fecha,Categoría,Descripción,Monto\n")
	assert.Contains(t, out, "1,2024-05-01,Comida,Almuerzo,12.35\n")
	assert.Contains(t, out, "2,2024-05-02,Ocio,,7.66\n")

	_, err = Entries(context.Background(), src, models.EntryKind("otro"))
	assert.Error(t, err)
}
