package core

// Session is the authentication state of one logged-in user. It is created
// at login and destroyed at logout; the sensitive-area flag always starts
// false and survives navigation for the lifetime of the login.
type Session struct {
	Email       string
	DisplayName string
	Role        Role

	// PrimaryAuthenticated is true for the whole life of the session —
	// a Session only exists after a successful login.
	PrimaryAuthenticated bool

	// SensitiveAreaAuthenticated records a completed secondary password
	// confirmation for the legal area. Set only by the navigation gate.
	SensitiveAreaAuthenticated bool
}

// NewSession builds the session created by a successful primary login.
func NewSession(email, displayName string, role Role) *Session {
	return &Session{
		Email:                email,
		DisplayName:          displayName,
		Role:                 role,
		PrimaryAuthenticated: true,
	}
}
