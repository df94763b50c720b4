package models

// EntryKind 流水类型
type EntryKind string

const (
	KindExpense EntryKind = "gasto"
	KindIncome  EntryKind = "ingreso"
)

// Expense 支出记录
type Expense struct {
	ID          RecordID `json:"id"`
	Fecha       string   `json:"fecha"`
	Categoria   string   `json:"categoria"`
	Monto       Amount   `json:"monto"`
	Descripcion string   `json:"descripcion"`
	PrestamoID  RecordID `json:"prestamoId,omitempty"`
	TipoAbono   string   `json:"tipoAbono,omitempty"`
}

// Income 收入记录
type Income struct {
	ID          RecordID `json:"id"`
	Fecha       string   `json:"fecha"`
	Fuente      string   `json:"fuente"`
	Monto       Amount   `json:"monto"`
	Descripcion string   `json:"descripcion"`
	PrestamoID  RecordID `json:"prestamoId,omitempty"`
	TipoAbono   string   `json:"tipoAbono,omitempty"`
}

// Entry 支出与收入的统一视图，Label 为类别或来源名称
type Entry struct {
	Kind        EntryKind
	ID          RecordID
	Fecha       string
	Label       string
	Monto       Amount
	Descripcion string
	PrestamoID  string
	TipoAbono   string
}

// Entry 转换为统一视图
func (e Expense) Entry() Entry {
	return Entry{
		Kind:        KindExpense,
		ID:          e.ID,
		Fecha:       e.Fecha,
		Label:       e.Categoria,
		Monto:       e.Monto,
		Descripcion: e.Descripcion,
		PrestamoID:  e.PrestamoID.String(),
		TipoAbono:   e.TipoAbono,
	}
}

// Entry 转换为统一视图
func (i Income) Entry() Entry {
	return Entry{
		Kind:        KindIncome,
		ID:          i.ID,
		Fecha:       i.Fecha,
		Label:       i.Fuente,
		Monto:       i.Monto,
		Descripcion: i.Descripcion,
		PrestamoID:  i.PrestamoID.String(),
		TipoAbono:   i.TipoAbono,
	}
}

// Category 支出类别
type Category struct {
	ID     RecordID `json:"id"`
	Nombre string   `json:"nombre"`
	Color  string   `json:"color"`
}

// Source 收入来源
type Source struct {
	ID     RecordID `json:"id"`
	Nombre string   `json:"nombre"`
}

// EntryFields 支出/收入表单字段原文，Label 为类别或来源
type EntryFields struct {
	Fecha       string `json:"fecha"`
	Label       string `json:"label"`
	Monto       string `json:"monto"`
	Descripcion string `json:"descripcion"`
	PrestamoID  string `json:"prestamoId,omitempty"`
	TipoAbono   string `json:"tipoAbono,omitempty"`
}

// Fields 编辑时预填的字段，避免再次请求
func (e Entry) Fields() EntryFields {
	return EntryFields{
		Fecha:       e.Fecha,
		Label:       e.Label,
		Monto:       e.Monto.String(),
		Descripcion: e.Descripcion,
		PrestamoID:  e.PrestamoID,
		TipoAbono:   e.TipoAbono,
	}
}
