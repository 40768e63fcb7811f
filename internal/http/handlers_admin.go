package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/civassist/cva-ui-api/internal/domain/model"
)

// TokenAdminService defines the interface for access-token administration.
type TokenAdminService interface {
	List(ctx context.Context) ([]*model.AccessToken, error)
	SetActive(ctx context.Context, token string, active bool) (*model.AccessToken, error)
	SetExpiry(ctx context.Context, token string, expiresAt *time.Time) (*model.AccessToken, error)
}

// AdminHandlers provides HTTP handlers for the administrator surface.
type AdminHandlers struct {
	Svc TokenAdminService
}

// ListTokens returns the full access-token catalog.
// GET /api/admin/access-tokens.
func (h *AdminHandlers) ListTokens(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"tokens": rows})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive flips one token's active flag.
// POST /api/admin/access-tokens/{token}/active.
func (h *AdminHandlers) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	row, err := h.Svc.SetActive(r.Context(), r.PathValue("token"), req.Active)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, row)
}

type setExpiryRequest struct {
	// ExpiresAt is RFC 3339; null clears the expiry.
	ExpiresAt *time.Time `json:"expires_at"`
}

// SetExpiry updates one token's expiry timestamp.
// POST /api/admin/access-tokens/{token}/expiry.
func (h *AdminHandlers) SetExpiry(w http.ResponseWriter, r *http.Request) {
	var req setExpiryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	row, err := h.Svc.SetExpiry(r.Context(), r.PathValue("token"), req.ExpiresAt)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, row)
}
