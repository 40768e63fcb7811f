package httpx

import (
	"net/http"

	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// RequireAdmin returns a middleware that re-checks the privilege decision on
// the handler itself. The edge gate already ran it, but routing mistakes and
// refactors should not be able to expose an admin handler, so the handler
// verifies independently instead of trusting the route table.
func RequireAdmin(authSvc AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := GetIdentityFromContext(r.Context())
			if !ok {
				// The gate did not run for this request. Verify from scratch.
				jar := GetJarFromContext(r.Context())
				verified, err := authSvc.Verify(r.Context(), jar)
				if err != nil {
					verified = nil
				}
				ident = verified
			}

			switch authSvc.Decide(ident) {
			case domainauth.DecisionAllow:
				next.ServeHTTP(w, r.WithContext(SetIdentityInContext(r.Context(), ident)))
			case domainauth.DecisionForbid:
				WriteJSON(w, http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
			default:
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errAuthenticationRequired,
				})
			}
		})
	}
}
