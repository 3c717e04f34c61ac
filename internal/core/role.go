package core

// Role is the closed set of user roles. The string values are stored in the
// users table and embedded in auth tokens, so they must not change.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleLegal        Role = "Jurídico"
	RoleManager      Role = "Gestor"
	RoleCollaborator Role = "Colaborador"
	RoleIntern       Role = "Estagiário"
	RoleOperations   Role = "Operação"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleLegal, RoleManager, RoleCollaborator, RoleIntern, RoleOperations}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// Allows is the single permission evaluator: it decides whether a role may
// see a view. Every role check in the system goes through here — no other
// component compares roles directly.
//
// It deliberately does not consult the sensitive-area flag; that is a second
// gate layered on top for the legal view (see Workspace.RequestNavigate).
func Allows(role Role, view View) bool {
	switch view {
	case ViewLegal:
		return role == RoleAdmin || role == RoleLegal
	case ViewAdmin:
		return role == RoleAdmin
	default:
		return true
	}
}
