package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"workon-intranet/internal/app"

	"github.com/golang-jwt/jwt/v5"
)

type authClaimsKey struct{}

// AuthClaims is the authenticated identity extracted from the JWT. The
// SessionID keys the server-side workspace.
type AuthClaims struct {
	UserID    int
	SessionID string
	Role      string
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	UserID    int    `json:"user_id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth is chi middleware that validates the auth_token cookie and
// injects AuthClaims into the request context. Returns 401 if the token is
// absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("auth_token")
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey{}, &AuthClaims{
			UserID:    claims.UserID,
			SessionID: claims.SessionID,
			Role:      claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// login handles POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, "invalid email or password", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	claims := &jwtClaims{
		UserID:    result.UserID,
		SessionID: result.SessionID,
		Role:      string(result.State.Session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   3600,
	})
	writeJSON(w, workspaceResponseFrom(result.State))
}

// logout handles POST /api/auth/logout — tears down the workspace and
// clears the auth cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if claims := authFromContext(r.Context()); claims != nil {
		h.svc.Logout(claims.SessionID)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me — returns the current session identity.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	state, err := h.svc.WorkspaceState(claims.SessionID)
	if err != nil {
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	type meResponse struct {
		Email                      string `json:"email"`
		DisplayName                string `json:"display_name"`
		Role                       string `json:"role"`
		SensitiveAreaAuthenticated bool   `json:"sensitive_area_authenticated"`
	}
	writeJSON(w, meResponse{
		Email:                      state.Session.Email,
		DisplayName:                state.Session.DisplayName,
		Role:                       string(state.Session.Role),
		SensitiveAreaAuthenticated: state.Session.SensitiveAreaAuthenticated,
	})
}

// reauth handles POST /api/auth/reauth — the sensitive-area password
// prompt. A wrong password keeps the prompt open (401, retry allowed); a
// concurrent submission is rejected with 409.
func (h *Handler) reauth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	// The secret is used for this one verification and never stored.
	claims := authFromContext(r.Context())

	state, err := h.svc.Reauthenticate(r.Context(), claims.SessionID, req.Password)
	switch {
	case errors.Is(err, app.ErrReauthFailed):
		writeError(w, r, "senha incorreta, tente novamente", "REAUTH_FAILED", http.StatusUnauthorized)
		return
	case errors.Is(err, app.ErrBusy):
		writeError(w, r, "a verification is already in progress", "BUSY", http.StatusConflict)
		return
	case errors.Is(err, app.ErrWorkspaceNotFound):
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	case err != nil:
		writeError(w, r, "reauthentication error", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, workspaceResponseFrom(*state))
}

// reauthCancel handles POST /api/auth/reauth/cancel — dismisses the prompt
// without granting access.
func (h *Handler) reauthCancel(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	state, err := h.svc.CancelReauth(claims.SessionID)
	if err != nil {
		writeError(w, r, "session expired", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	writeJSON(w, workspaceResponseFrom(*state))
}
