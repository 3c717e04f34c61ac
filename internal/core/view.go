package core

import "strings"

// View identifies one screen of the intranet. Exactly one view is current
// per workspace at all times.
type View string

const (
	ViewDashboard    View = "dashboard"
	ViewSettings     View = "settings"
	ViewAdmin        View = "admin"
	ViewLegal        View = "legal"
	ViewClientCenter View = "client-center"
)

// NormalizeView maps a free-text view token from the classifier onto a View.
// Matching is case-insensitive and tolerant: department tokens land on the
// dashboard, and anything unrecognized falls back to the dashboard rather
// than failing.
func NormalizeView(raw string) View {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dashboard", "financeiro", "vendas", "rh", "ti", "operacoes":
		return ViewDashboard
	case "settings", "configuracoes":
		return ViewSettings
	case "admin", "administracao":
		return ViewAdmin
	case "legal", "juridico":
		return ViewLegal
	case "client-center", "clientes":
		return ViewClientCenter
	default:
		return ViewDashboard
	}
}
