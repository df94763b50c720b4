package models

// Goal 储蓄目标，同一时间最多展示一个进行中的目标
type Goal struct {
	Nombre       string  `json:"nombre"`
	MontoMeta    Amount  `json:"monto_meta"`
	PlazoMeses   int     `json:"plazo_meses"`
	FechaInicio  string  `json:"fecha_inicio"`
	AhorroActual float64 `json:"ahorroActual"`
	Progreso     float64 `json:"progreso"`
	Mensaje      string  `json:"mensaje"`
}
