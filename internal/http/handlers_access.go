package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// ExchangeService defines the interface for the access-token exchange.
type ExchangeService interface {
	Exchange(ctx context.Context, jar *cookiejar.Jar, rawToken, area string) (*domainauth.Grant, error)
}

// AccessHandlers provides HTTP handlers for the token exchange.
type AccessHandlers struct {
	Svc ExchangeService
}

type exchangeRequest struct {
	Token string `json:"token"`
	Area  string `json:"area"`
}

type exchangeResponse struct {
	OK        bool      `json:"ok"`
	Group     string    `json:"group"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Exchange swaps a raw access token for the grant cookie pair.
// POST /api/access/exchange.
func (h *AccessHandlers) Exchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	jar := GetJarFromContext(r.Context())
	grant, err := h.Svc.Exchange(r.Context(), jar, req.Token, req.Area)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, exchangeResponse{
		OK:        true,
		Group:     grant.Group,
		ExpiresAt: grant.ExpiresAt.UTC(),
	})
}
