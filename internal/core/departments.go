package core

// Department is one business-unit dashboard a user can expand.
type Department struct {
	ID   string
	Name string
}

// Departments lists every available department in display order.
var Departments = []Department{
	{ID: "rh", Name: "Recursos Humanos"},
	{ID: "vendas", Name: "Vendas"},
	{ID: "financeiro", Name: "Financeiro"},
	{ID: "ti", Name: "Tecnologia"},
	{ID: "operacoes", Name: "Operações"},
}

// DepartmentFinancial is the department token the dispatcher auto-selects
// when a financial navigation intent arrives.
const DepartmentFinancial = "financeiro"

// DefaultDepartments is the selection every fresh workspace starts with.
func DefaultDepartments() []string {
	return []string{"rh", "vendas"}
}

// ValidDepartment reports whether id names a known department.
func ValidDepartment(id string) bool {
	for _, d := range Departments {
		if d.ID == id {
			return true
		}
	}
	return false
}
