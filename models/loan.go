package models

import "github.com/shopspring/decimal"

// 借贷方向
const (
	LoanLent     = "PRESTADO" // 借出，应收
	LoanBorrowed = "RECIBIDO" // 借入，应付
)

// LoanStatusActive 进行中的借贷
const LoanStatusActive = "Activo"

// Loan 借贷记录，余额与月供由服务端计算
type Loan struct {
	ID           RecordID `json:"id"`
	Tipo         string   `json:"tipo"`
	Contraparte  string   `json:"contraparte"`
	MontoInicial Amount   `json:"montoInicial"`
	SaldoActual  Amount   `json:"saldoActual"`
	Tasa         Amount   `json:"tasa"`
	CuotaMensual Amount   `json:"cuotaMensual"`
	Estado       string   `json:"estado"`
	FechaInicio  string   `json:"fechaInicio"`
}

// Receivable 是否为应收
func (l Loan) Receivable() bool {
	return l.Tipo == LoanLent
}

// Active 是否进行中
func (l Loan) Active() bool {
	return l.Estado == LoanStatusActive
}

// LoanBook getPrestamos 返回的两张表
type LoanBook struct {
	Cobrar []Loan `json:"cobrar"`
	Pagar  []Loan `json:"pagar"`
}

// All 合并两张表
func (b LoanBook) All() []Loan {
	all := make([]Loan, 0, len(b.Cobrar)+len(b.Pagar))
	all = append(all, b.Cobrar...)
	return append(all, b.Pagar...)
}

// Totals 应收与应付余额合计
// 任一余额无效时返回 ErrInvalidAmount
func (b LoanBook) Totals() (receivable, payable decimal.Decimal, err error) {
	if receivable, err = sumBalances(b.Cobrar); err != nil {
		return
	}
	payable, err = sumBalances(b.Pagar)
	return
}

func sumBalances(loans []Loan) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range loans {
		d, ok := l.SaldoActual.Decimal()
		if !ok {
			return decimal.Zero, &InvalidAmountError{Field: "saldoActual", Record: l.ID.String(), Raw: l.SaldoActual.Raw()}
		}
		total = total.Add(d)
	}
	return total, nil
}
