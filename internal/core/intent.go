package core

import "strings"

// IntentKind tags the two action shapes the dispatcher understands.
type IntentKind string

const (
	IntentNavigate  IntentKind = "NAVIGATE"
	IntentOpenModal IntentKind = "OPEN_MODAL"
)

// Modal targets recognized by the dispatcher. Anything else is dropped.
const (
	ModalTargetFinancial = "financeiro_detalhe"
	ModalTargetLegal     = "juridico_status"
)

// Intent is a validated instruction derived from the classifier's raw
// output. Target carries the classifier's original token unmodified; the
// dispatcher normalizes it at the point of use because some raw tokens
// ("financeiro") carry meaning the normalized view would lose.
type Intent struct {
	Kind   IntentKind
	Target string
	Filter string // month filter for the financial modal
	Title  string // optional modal title override
}

// NewNavigateIntent builds a navigation intent. Returns nil for an empty
// target so callers can pass the result straight to Dispatch.
func NewNavigateIntent(target string) *Intent {
	if strings.TrimSpace(target) == "" {
		return nil
	}
	return &Intent{Kind: IntentNavigate, Target: target}
}

// NewOpenModalIntent builds a modal intent. The target must be present;
// filter and title are optional.
func NewOpenModalIntent(target, filter, title string) *Intent {
	if strings.TrimSpace(target) == "" {
		return nil
	}
	return &Intent{Kind: IntentOpenModal, Target: target, Filter: filter, Title: title}
}

// Valid reports whether the intent is well-formed enough to dispatch.
func (i *Intent) Valid() bool {
	if i == nil {
		return false
	}
	switch i.Kind {
	case IntentNavigate, IntentOpenModal:
		return strings.TrimSpace(i.Target) != ""
	default:
		return false
	}
}
