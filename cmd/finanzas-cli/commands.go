package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"finanzas/app"
	"finanzas/export"
	"finanzas/gateway"
	"finanzas/models"
	"finanzas/status"
)

func (e *env) dashboard(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	periodo := fs.String("periodo", string(models.DefaultPeriod), "diario, semanal o mensual")
	if err := fs.Parse(args); err != nil {
		return err
	}
	period, err := models.ParsePeriodFilter(*periodo)
	if err != nil {
		return err
	}

	e.coord.SetFilter(ctx, period)
	v := e.coord.View()
	printNotice(e.stdout, v.Status[status.RegionDashboard])
	if v.Dashboard.Summary != nil {
		fmt.Fprintln(e.stdout, summaryBox(*v.Dashboard.Summary))
	}
	fmt.Fprintln(e.stdout, e.board.View())
	return nil
}

func (e *env) entries(ctx context.Context, section app.Section) error {
	e.coord.Navigate(ctx, section)
	kind, region := models.KindExpense, status.RegionGasto
	if section == app.SectionIngresos {
		kind, region = models.KindIncome, status.RegionIngreso
		e.coord.LoadIncomes(ctx)
	} else {
		e.coord.LoadExpenses(ctx)
	}

	v := e.coord.View()
	rows := v.Expenses
	if kind == models.KindIncome {
		rows = v.Incomes
	}
	fmt.Fprintln(e.stdout, entryTable(export.LabelHeader(kind), rows))
	printNotice(e.stdout, v.Status[region])
	return nil
}

func (e *env) loans(ctx context.Context) error {
	e.coord.Navigate(ctx, app.SectionPrestamos)
	e.coord.LoadLoans(ctx)
	v := e.coord.View()
	fmt.Fprintln(e.stdout, loanTable("Cuentas por Cobrar", v.Loans.Cobrar))
	fmt.Fprintln(e.stdout, loanTable("Deudas por Pagar", v.Loans.Pagar))
	printNotice(e.stdout, v.Status[status.RegionPrestamo])
	return nil
}

func parseKind(s string) (models.EntryKind, error) {
	switch strings.ToLower(s) {
	case "gasto", "gastos":
		return models.KindExpense, nil
	case "ingreso", "ingresos":
		return models.KindIncome, nil
	}
	return "", fmt.Errorf("tipo desconocido: %q (gasto o ingreso)", s)
}

// outcome 把远程动作的结果转换为命令的返回值
func (e *env) outcome(region status.Region, res *gateway.Envelope, err error) error {
	n := e.coord.Status().Get(region)
	printNotice(e.stdout, n)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%s", n.Message)
	}
	return nil
}

// create 通过表单新增支出或收入
func (e *env) create(ctx context.Context, args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: nuevo gasto|ingreso -monto N -etiqueta X [-fecha AAAA-MM-DD] [-desc texto]")
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("nuevo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	monto := fs.String("monto", "", "Monto")
	etiqueta := fs.String("etiqueta", "", "Categoría o fuente")
	fecha := fs.String("fecha", today(), "Fecha AAAA-MM-DD")
	desc := fs.String("desc", "", "Descripción")
	prestamo := fs.String("prestamo", "", "ID del préstamo asociado")
	abono := fs.String("abono", "", "Tipo de abono")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	form := e.coord.EntryForm(kind)
	form.SetFields(models.EntryFields{
		Fecha: *fecha, Label: *etiqueta, Monto: *monto, Descripcion: *desc,
		PrestamoID: *prestamo, TipoAbono: *abono,
	})
	res, err := form.Submit(ctx)
	return e.outcome(form.Region(), res, err)
}

// remove 删除记录，必须带 -si 确认
func (e *env) remove(ctx context.Context, args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: eliminar gasto|ingreso|prestamo -id N -si")
	}
	target := strings.ToLower(args[0])
	fs := flag.NewFlagSet("eliminar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	id := fs.String("id", "", "ID del registro")
	yes := fs.Bool("si", false, "Confirmar la eliminación")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("falta -id")
	}
	if !*yes {
		return fmt.Errorf("confirme la eliminación con -si")
	}

	// 先加载列表，按服务端签发的 ID 形式回传
	rid := models.NewRecordID(*id)
	switch target {
	case "gasto":
		e.coord.LoadExpenses(ctx)
		res, err := e.coord.DeleteExpense(ctx, rid)
		return e.outcome(status.RegionGasto, res, err)
	case "ingreso":
		e.coord.LoadIncomes(ctx)
		res, err := e.coord.DeleteIncome(ctx, rid)
		return e.outcome(status.RegionIngreso, res, err)
	case "prestamo":
		e.coord.LoadLoans(ctx)
		res, err := e.coord.DeleteLoan(ctx, rid)
		return e.outcome(status.RegionPrestamo, res, err)
	}
	return fmt.Errorf("tipo desconocido: %q", target)
}

// configAction 初始化或重置远程数据库，重置必须带 -si
func (e *env) configAction(ctx context.Context, args []string, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: config iniciar|resetear [-si]")
	}
	action := strings.ToLower(args[0])
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	yes := fs.Bool("si", false, "Confirmar el reinicio")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if action == gateway.ActionReset && !*yes {
		return fmt.Errorf("el reinicio borra todos los datos; confirme con -si")
	}
	res, err := e.coord.ConfigAction(ctx, action)
	return e.outcome(status.RegionConfig, res, err)
}

// export 按扩展名导出 xlsx 或 csv
func (e *env) export(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", export.Filename(strings.ReplaceAll(today(), "-", "")), "Archivo de salida (.xlsx o .csv)")
	tipo := fs.String("tipo", string(models.KindExpense), "Para CSV: gasto o ingreso")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".csv":
		kind, err := parseKind(*tipo)
		if err != nil {
			return err
		}
		entries, err := export.Entries(ctx, e.client, kind)
		if err != nil {
			return err
		}
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		if err := export.WriteCSV(f, kind, entries); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case ".xlsx":
		f, err := export.Fetch(ctx, e.client)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := f.SaveAs(*out); err != nil {
			return err
		}
	default:
		return fmt.Errorf("formato no soportado: %s", *out)
	}
	fmt.Fprintln(e.stdout, successStyle.Render("Exportado a "+*out))
	return nil
}
