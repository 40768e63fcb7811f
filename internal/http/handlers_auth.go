package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// SessionService defines the interface for session bridge operations.
type SessionService interface {
	Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error)
	Decide(ident *domainauth.Identity) domainauth.Decision
	Bridge(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error
	SignOut(ctx context.Context, jar *cookiejar.Jar) error
}

// AuthHandlers provides HTTP handlers for session operations.
type AuthHandlers struct {
	Svc    SessionService
	Logger *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type setSessionRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// SetSession installs a client-established credential pair as session cookies.
// POST /api/auth/session.
func (h *AuthHandlers) SetSession(w http.ResponseWriter, r *http.Request) {
	var req setSessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	jar := GetJarFromContext(r.Context())
	if err := h.Svc.Bridge(r.Context(), jar, req.AccessToken, req.RefreshToken); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{OK: true})
}

// Logout ends the current session. The session cookies are cleared even when
// upstream revocation fails, so the error response still carries the
// clearing Set-Cookie headers.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	jar := GetJarFromContext(r.Context())
	if err := h.Svc.SignOut(r.Context(), jar); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{OK: true})
}

type statusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Admin         bool   `json:"admin"`
	Email         string `json:"email,omitempty"`
}

// Status reports whether the caller currently has a verified identity.
// Verification failures read as "not authenticated" rather than erroring, so
// the client can always render something.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	jar := GetJarFromContext(r.Context())
	ident, err := h.Svc.Verify(r.Context(), jar)
	if err != nil {
		h.logger().WarnContext(r.Context(), "status verification failed", "error", err)
		ident = nil
	}

	resp := statusResponse{}
	if ident != nil {
		resp.Authenticated = true
		resp.Email = ident.Email
		resp.Admin = h.Svc.Decide(ident) == domainauth.DecisionAllow
	}
	WriteJSON(w, http.StatusOK, resp)
}
