package app

import (
	"fmt"
	"strings"
)

// Section 导航中的页面
type Section string

const (
	SectionDashboard  Section = "dashboard"
	SectionGastos     Section = "gastos"
	SectionIngresos   Section = "ingresos"
	SectionPrestamos  Section = "prestamos"
	SectionObjetivos  Section = "objetivos"
	SectionCategorias Section = "categorias"
	SectionConfig     Section = "configuracion"
)

// Sections 导航顺序
func Sections() []Section {
	return []Section{
		SectionDashboard, SectionGastos, SectionIngresos, SectionPrestamos,
		SectionObjetivos, SectionCategorias, SectionConfig,
	}
}

// ParseSection 解析页面名
func ParseSection(s string) (Section, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sec := range Sections() {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}
