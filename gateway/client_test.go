package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"finanzas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/exec")
}

func TestSend_ReadActionUsesQueryString(t *testing.T) {
	var gotMethod, gotAction, gotPeriodo string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAction = r.URL.Query().Get("action")
		gotPeriodo = r.URL.Query().Get("periodo")
		_, _ = io.WriteString(w, `{"status":"success","data":{"totalIngresos":1}}`)
	})

	env, err := c.Send(context.Background(), ActionGetSummary, Query{"periodo": "semanal"})
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, ActionGetSummary, gotAction)
	assert.Equal(t, "semanal", gotPeriodo)
}

func TestSend_MutationPostsJSONBody(t *testing.T) {
	var body map[string]any
	var contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"status":"success","message":"Gasto registrado"}`)
	})

	id := models.IntID(7)
	env, err := c.SaveExpense(context.Background(), EntryRequest{
		ID:        &id,
		Categoria: "Comida",
		Monto:     "12.50",
		Fecha:     "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gasto registrado", env.Message)
	assert.Equal(t, "text/plain;charset=utf-8", contentType)
	assert.Equal(t, ActionUpdateExpense, body["action"])
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "12.50", body["monto"])
	assert.NotContains(t, body, "prestamoId")
}

func TestSend_LogicalFailureIsNotAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":"error","message":"Categoría inválida"}`)
	})

	env, err := c.Send(context.Background(), ActionAddExpense, EntryRequest{Monto: "1"})
	require.NoError(t, err)
	assert.False(t, env.OK())

	lf, ok := AsLogicalFailure(env.Failure(ActionAddExpense))
	require.True(t, ok)
	assert.Equal(t, "Categoría inválida", lf.Error())
}

func TestSend_NonJSONIsConnectionError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>Service unavailable</html>")
	})

	_, err := c.Send(context.Background(), ActionGetExpenses, nil)
	require.Error(t, err)
	assert.True(t, IsConnectionError(err))
	// 只读动作不存在结果未知的问题
	assert.False(t, IsOutcomeUnknown(err))

	_, err = c.Send(context.Background(), ActionAddLoan, LoanRequest{Tipo: models.LoanLent})
	require.Error(t, err)
	assert.True(t, IsOutcomeUnknown(err))
}

func TestSend_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Send(context.Background(), ActionGetGoal, nil)
	require.Error(t, err)
	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "request", ce.Op)
	assert.False(t, ce.MalformedReply)
}

func TestTypedReads(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case ActionGetExpenses:
			_, _ = io.WriteString(w, `{"status":"success","data":[{"id":3,"fecha":"2024-01-02","categoria":"Luz","monto":"45.5","descripcion":"recibo"}]}`)
		case ActionGetGoal:
			_, _ = io.WriteString(w, `{"status":"success","data":null}`)
		case ActionGetLoans:
			_, _ = io.WriteString(w, `{"status":"success","data":{"cobrar":[{"id":1,"saldoActual":100.25}],"pagar":[{"id":2,"saldoActual":40}]}}`)
		default:
			_, _ = io.WriteString(w, `{"status":"error","message":"Acción desconocida"}`)
		}
	})
	ctx := context.Background()

	expenses, err := c.Expenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "3", expenses[0].ID.String())
	assert.Equal(t, "45.5", expenses[0].Monto.String())

	goal, err := c.ActiveGoal(ctx)
	require.NoError(t, err)
	assert.Nil(t, goal)

	book, err := c.Loans(ctx)
	require.NoError(t, err)
	rec, pay, err := book.Totals()
	require.NoError(t, err)
	assert.Equal(t, "100.25", rec.String())
	assert.Equal(t, "40", pay.String())

	_, err = c.Incomes(ctx)
	lf, ok := AsLogicalFailure(err)
	require.True(t, ok)
	assert.Equal(t, "Acción desconocida", lf.Message)
}

func TestAdmin_RejectsUnknownAction(t *testing.T) {
	c := NewClient("http://127.0.0.1:0")
	_, err := c.Admin(context.Background(), "borrarTodo")
	assert.Error(t, err)
}
