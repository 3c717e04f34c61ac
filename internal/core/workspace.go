package core

import "sync"

// GateState is the navigation gate's position.
type GateState string

const (
	// GateIdle means no reauthentication is pending.
	GateIdle GateState = "idle"
	// GateAwaitingReauth means a sensitive-area password prompt is open.
	GateAwaitingReauth GateState = "awaiting_reauth"
)

// Workspace is the per-login UI state: current view, navigation-gate state,
// department selection, and the requested report modal. All fields are
// unexported on purpose — the only code paths that mutate them are the gate
// and dispatcher methods below, which serialize through the mutex.
type Workspace struct {
	mu            sync.Mutex
	session       *Session
	view          View
	gate          GateState
	departments   []string
	modal         *ModalContent
	deferredModal *ModalContent
	busy          bool
}

// NewWorkspace builds the workspace created at login: dashboard view, gate
// idle, default department selection, no modal.
func NewWorkspace(session *Session) *Workspace {
	return &Workspace{
		session:     session,
		view:        ViewDashboard,
		gate:        GateIdle,
		departments: DefaultDepartments(),
	}
}

// State is a read-only snapshot of a workspace, safe to hand to adapters.
type State struct {
	Session        Session
	View           View
	AwaitingReauth bool
	Departments    []string
	Modal          *ModalContent
	Busy           bool
}

// State returns a consistent snapshot of the workspace.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	deps := make([]string, len(w.departments))
	copy(deps, w.departments)

	var modal *ModalContent
	if w.modal != nil {
		m := *w.modal
		modal = &m
	}

	return State{
		Session:        *w.session,
		View:           w.view,
		AwaitingReauth: w.gate == GateAwaitingReauth,
		Departments:    deps,
		Modal:          modal,
		Busy:           w.busy,
	}
}

// ToggleDepartment flips membership of a department in the selection,
// preserving insertion order. Unknown ids are ignored. Returns the
// selection after the toggle.
func (w *Workspace) ToggleDepartment(id string) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ValidDepartment(id) {
		if w.hasDepartmentLocked(id) {
			kept := w.departments[:0]
			for _, d := range w.departments {
				if d != id {
					kept = append(kept, d)
				}
			}
			w.departments = kept
		} else {
			w.departments = append(w.departments, id)
		}
	}

	deps := make([]string, len(w.departments))
	copy(deps, w.departments)
	return deps
}

// CloseModal clears the requested report modal, if any.
func (w *Workspace) CloseModal() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modal = nil
}

// TryBeginRequest claims the workspace's single in-flight request slot.
// It returns false if another chat or reauth submission is already running;
// the caller must reject the second submission rather than queue it.
func (w *Workspace) TryBeginRequest() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return false
	}
	w.busy = true
	return true
}

// EndRequest releases the in-flight request slot.
func (w *Workspace) EndRequest() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false
}

func (w *Workspace) hasDepartmentLocked(id string) bool {
	for _, d := range w.departments {
		if d == id {
			return true
		}
	}
	return false
}

func (w *Workspace) addDepartmentLocked(id string) {
	if !w.hasDepartmentLocked(id) {
		w.departments = append(w.departments, id)
	}
}
