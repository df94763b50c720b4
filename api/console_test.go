package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"finanzas/app"
	"finanzas/export"
	"finanzas/gateway"
	"finanzas/middleware"
	"finanzas/models"
	"finanzas/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeGateway struct {
	mu      sync.Mutex
	env     *gateway.Envelope
	sendErr error
	saved   []gateway.EntryRequest
	deleted []string
	admin   []string
}

func (f *fakeGateway) Summary(ctx context.Context, p models.PeriodFilter) (*models.Summary, error) {
	return &models.Summary{
		TotalIngresos: models.ParseAmount("1500"),
		TotalGastos:   models.ParseAmount("20"),
		Balance:       models.ParseAmount("1480"),
	}, nil
}

func (f *fakeGateway) ChartSeries(ctx context.Context, p models.PeriodFilter) (*models.ChartSeries, error) {
	return &models.ChartSeries{Labels: []string{"may"}, Ingresos: []float64{1500}, Gastos: []float64{20}}, nil
}

func (f *fakeGateway) Loans(ctx context.Context) (models.LoanBook, error) {
	return models.LoanBook{
		Pagar: []models.Loan{{ID: models.IntID(4), Tipo: models.LoanBorrowed, Contraparte: "Banco",
			MontoInicial: models.ParseAmount("1000"), SaldoActual: models.ParseAmount("800"),
			CuotaMensual: models.ParseAmount("105.5"), Estado: models.LoanStatusActive}},
	}, nil
}

func (f *fakeGateway) Categories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: models.IntID(1), Nombre: "Comida", Color: "#ff0000"}}, nil
}

func (f *fakeGateway) Sources(ctx context.Context) ([]models.Source, error) {
	return []models.Source{{ID: models.IntID(1), Nombre: "Salario"}}, nil
}

func (f *fakeGateway) ActiveGoal(ctx context.Context) (*models.Goal, error) {
	return nil, nil
}

func (f *fakeGateway) Expenses(ctx context.Context) ([]models.Expense, error) {
	return []models.Expense{
		{ID: models.IntID(7), Fecha: "2024-05-01", Categoria: "Comida", Monto: models.ParseAmount("12.5"), Descripcion: "Almuerzo"},
	}, nil
}

func (f *fakeGateway) Incomes(ctx context.Context) ([]models.Income, error) {
	return []models.Income{
		{ID: models.IntID(9), Fecha: "2024-05-01", Fuente: "Salario", Monto: models.ParseAmount("1500")},
	}, nil
}

func (f *fakeGateway) reply() (*gateway.Envelope, error) {
	return f.env, f.sendErr
}

func (f *fakeGateway) SaveExpense(ctx context.Context, req gateway.EntryRequest) (*gateway.Envelope, error) {
	f.mu.Lock()
	f.saved = append(f.saved, req)
	f.mu.Unlock()
	return f.reply()
}

func (f *fakeGateway) SaveIncome(ctx context.Context, req gateway.EntryRequest) (*gateway.Envelope, error) {
	return f.SaveExpense(ctx, req)
}

func (f *fakeGateway) CreateGoal(ctx context.Context, req gateway.GoalRequest) (*gateway.Envelope, error) {
	return f.reply()
}

func (f *fakeGateway) AddLoan(ctx context.Context, req gateway.LoanRequest) (*gateway.Envelope, error) {
	return f.reply()
}

func (f *fakeGateway) AddCategory(ctx context.Context, req gateway.CategoryRequest) (*gateway.Envelope, error) {
	return f.reply()
}

func (f *fakeGateway) AddSource(ctx context.Context, req gateway.SourceRequest) (*gateway.Envelope, error) {
	return f.reply()
}

func (f *fakeGateway) delete(kind string, id models.RecordID) (*gateway.Envelope, error) {
	f.mu.Lock()
	f.deleted = append(f.deleted, kind+":"+id.String())
	f.mu.Unlock()
	return f.reply()
}

func (f *fakeGateway) DeleteExpense(ctx context.Context, id models.RecordID) (*gateway.Envelope, error) {
	return f.delete("gasto", id)
}

func (f *fakeGateway) DeleteIncome(ctx context.Context, id models.RecordID) (*gateway.Envelope, error) {
	return f.delete("ingreso", id)
}

func (f *fakeGateway) DeleteLoan(ctx context.Context, id models.RecordID) (*gateway.Envelope, error) {
	return f.delete("prestamo", id)
}

func (f *fakeGateway) Admin(ctx context.Context, action string) (*gateway.Envelope, error) {
	f.mu.Lock()
	f.admin = append(f.admin, action)
	f.mu.Unlock()
	return f.reply()
}

var _ export.Source = (*fakeGateway)(nil)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testServer struct {
	router *gin.Engine
	gw     *fakeGateway
	coord  *app.Coordinator
	cookie session.CookieOptions
	guard  *session.Guard
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := &fakeGateway{env: &gateway.Envelope{Status: gateway.StatusSuccess, Message: "Hecho."}}
	clock := func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local) }
	coord := app.New(gw, app.Options{LoanLinks: true, Clock: clock, Logger: quietLogger()})
	t.Cleanup(coord.Close)

	guard, err := session.NewGuard("admin", "1234", "", nil, coord.Status())
	require.NoError(t, err)
	cookie := session.CookieOptions{Secret: []byte("secreto"), MaxAge: time.Hour}

	console := NewConsoleHandler(coord)
	sessions := NewSessionHandler(guard, cookie, coord)
	exports := NewExportHandler(gw)
	exports.now = clock

	r := gin.New()
	r.GET("/session", sessions.Status)
	r.POST("/session/login", sessions.Login)
	r.POST("/session/logout", sessions.Logout)

	auth := r.Group("")
	auth.Use(middleware.SessionGate(guard, cookie))
	auth.GET("/view", console.View)
	auth.PUT("/filter", console.SetFilter)
	auth.POST("/sections/:name", console.Navigate)
	auth.POST("/admin/:action", console.ConfigAction)
	auth.GET("/gastos", console.ListExpenses)
	auth.POST("/gastos", console.SubmitExpense)
	auth.POST("/gastos/cancelar", console.CancelExpense)
	auth.POST("/gastos/:id/editar", console.EditExpense)
	auth.DELETE("/gastos/:id", console.DeleteExpense)
	auth.POST("/prestamos/:id/abono", console.PrefillInstallment)
	auth.POST("/categorias", console.CreateCategory)
	auth.GET("/export/csv", exports.ExportCSV)
	auth.GET("/export/excel", exports.ExportExcel)

	return &testServer{router: r, gw: gw, coord: coord, cookie: cookie, guard: guard}
}

func (s *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login 登录并返回会话 cookie
func (s *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := s.do(t, "POST", "/session/login", `{"username":"admin","password":"1234"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultFlagKey {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (Response, map[string]any) {
	t.Helper()
	var resp struct {
		Response
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Response, resp.Data
}

func TestSession_LoginFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, "GET", "/view", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, "POST", "/session/login", `{"username":"admin","password":"mala"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp, _ := decode(t, w)
	assert.Equal(t, session.TextBadCredentials, resp.Message)

	cookie := s.login(t)
	assert.True(t, cookie.HttpOnly)

	w = s.do(t, "GET", "/session", "", cookie)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)

	w = s.do(t, "GET", "/view", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, "dashboard", data["section"])
	assert.Equal(t, "mensual", data["filter"])
	cats := data["categorias"].(map[string]any)
	assert.NotEmpty(t, cats["options"])

	// 退出前改变周期、页面并进入编辑状态
	w = s.do(t, "PUT", "/filter", `{"periodo":"diario"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "GET", "/gastos", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "POST", "/gastos/7/editar", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "POST", "/session/logout", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == session.DefaultFlagKey && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	// 退出等同整页重载，再次登录看到初始状态
	cookie = s.login(t)
	w = s.do(t, "GET", "/view", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, "dashboard", data["section"])
	assert.Equal(t, "mensual", data["filter"])
	assert.Empty(t, data["gastos"])
	gasto := data["forms"].(map[string]any)["gasto"].(map[string]any)
	assert.Equal(t, "create", gasto["mode"])
	assert.Nil(t, gasto["editId"])
}

func TestSubmitExpense(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	t.Run("validación", func(t *testing.T) {
		w := s.do(t, "POST", "/gastos", `{"fecha":"2024-05-01","label":"Comida","monto":"doce"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp, _ := decode(t, w)
		assert.Contains(t, resp.Message, "monto")
		assert.Empty(t, s.gw.saved)
	})

	t.Run("éxito", func(t *testing.T) {
		w := s.do(t, "POST", "/gastos", `{"fecha":"2024-05-01","label":"Comida","monto":"12.50","descripcion":"Almuerzo"}`, cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp, _ := decode(t, w)
		assert.Equal(t, "Hecho.", resp.Message)
		require.Len(t, s.gw.saved, 1)
		assert.Equal(t, "12.5", s.gw.saved[0].Monto)
	})

	t.Run("fallo lógico", func(t *testing.T) {
		s.gw.env = &gateway.Envelope{Status: "error", Message: "Categoría inexistente."}
		defer func() { s.gw.env = &gateway.Envelope{Status: gateway.StatusSuccess, Message: "Hecho."} }()
		w := s.do(t, "POST", "/gastos", `{"fecha":"2024-05-01","label":"Comida","monto":"3"}`, cookie)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp, data := decode(t, w)
		assert.Equal(t, "Categoría inexistente.", resp.Message)
		assert.NotNil(t, data["forms"])
	})

	t.Run("error de conexión", func(t *testing.T) {
		s.gw.sendErr = &gateway.ConnectionError{Action: "agregarGasto", Err: context.DeadlineExceeded}
		defer func() { s.gw.sendErr = nil }()
		w := s.do(t, "POST", "/gastos", `{"fecha":"2024-05-01","label":"Comida","monto":"3"}`, cookie)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestEditAndDeleteExpense(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	// 列表未加载时找不到记录
	w := s.do(t, "POST", "/gastos/7/editar", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "GET", "/gastos", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, "POST", "/gastos/7/editar", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	gasto := data["forms"].(map[string]any)["gasto"].(map[string]any)
	assert.Equal(t, "edit", gasto["mode"])

	w = s.do(t, "POST", "/gastos/cancelar", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "create", s.coord.EntryForm(models.KindExpense).Mode().String())

	w = s.do(t, "DELETE", "/gastos/7", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.gw.deleted)

	w = s.do(t, "DELETE", "/gastos/7?confirm=true", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"gasto:7"}, s.gw.deleted)
}

func TestNavigateAndFilter(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	w := s.do(t, "POST", "/sections/gastos", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, "gastos", data["section"])

	w = s.do(t, "POST", "/sections/nada", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "PUT", "/filter", `{"periodo":"semanal"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PeriodWeekly, s.coord.Filter())

	w = s.do(t, "PUT", "/filter", `{"periodo":"anual"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfigAction(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	w := s.do(t, "POST", "/admin/resetear", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, s.gw.admin)

	w = s.do(t, "POST", "/admin/borrar", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, "POST", "/admin/resetear?confirm=true", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, "POST", "/admin/iniciar", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{gateway.ActionReset, gateway.ActionInit}, s.gw.admin)
}

func TestPrefillInstallment(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	w := s.do(t, "POST", "/prestamos/4/abono", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decode(t, w)
	assert.Equal(t, "gasto", data["kind"])
	assert.Equal(t, "gastos", data["view"].(map[string]any)["section"])

	w = s.do(t, "POST", "/prestamos/99/abono", "", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCategory(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	w := s.do(t, "POST", "/categorias", `{"nombre":"Viajes","color":"rojo"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, "POST", "/categorias", `{"nombre":"Viajes","color":"#00ff00"}`, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExport(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login(t)

	w := s.do(t, "GET", "/export/csv?tipo=ingreso", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ingreso_20240601.csv")
	assert.True(t, strings.Contains(w.Body.String(), "9,2024-05-01,Salario,,1500.00"))

	w = s.do(t, "GET", "/export/csv?tipo=otro", "", cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, "GET", "/export/excel", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "finanzas_20240601.xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(export.SheetExpenses, "D2")
	require.NoError(t, err)
	assert.Equal(t, "Almuerzo", v)
}
