package core

// ReportKind selects which report a modal shows.
type ReportKind string

const (
	ReportFinancial ReportKind = "financial"
	ReportLegal     ReportKind = "legal"
)

// ModalContent describes the report modal currently requested by a
// workspace. At most one is live at a time; opening a new one replaces it.
type ModalContent struct {
	Title string
	Kind  ReportKind
	Month string // canonical month name, financial reports only
}
