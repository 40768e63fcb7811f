package httpx

import (
	"log/slog"
	"net/http"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	"github.com/civassist/cva-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       *service.AuthService
	Grants     *service.GrantService
	Content    *service.ContentService
	TokenAdmin *service.TokenAdminService

	CookieDomain string
	IsDev        bool         // Development mode; staged cookies skip the Secure attribute
	Logger       *slog.Logger // Logger for middleware and handlers (optional)
}

// NewRouter creates and configures the HTTP router with the full middleware
// stack: panic recovery, request logging, the cookie jar, and the admin edge
// gate, in that order from the outside in.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: logger}
	accessHandlers := &AccessHandlers{Svc: services.Grants}
	contentHandlers := &ContentHandlers{Svc: services.Content, Grants: services.Grants}
	adminHandlers := &AdminHandlers{Svc: services.TokenAdmin}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	mux.HandleFunc("POST /api/auth/session", authHandlers.SetSession)
	mux.HandleFunc("POST /api/auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /api/auth/status", authHandlers.Status)

	mux.HandleFunc("POST /api/access/exchange", accessHandlers.Exchange)

	mux.HandleFunc("GET /api/areas/{area}/candidates", contentHandlers.ListCandidates)
	mux.HandleFunc("GET /api/candidates/{id}", contentHandlers.GetCandidate)
	mux.HandleFunc("GET /api/candidates/{id}/answer", contentHandlers.AnswerProfile)
	mux.HandleFunc("GET /api/quiz/questions", contentHandlers.QuizQuestions)
	mux.HandleFunc("GET /api/polls", contentHandlers.OpenPolls)

	mux.HandleFunc("GET "+LoginPath, LoginPage)

	// Admin routes carry their own guard even though the edge gate already
	// covers the prefix.
	guard := RequireAdmin(services.Auth)
	mux.Handle("GET /api/admin/access-tokens", guard(http.HandlerFunc(adminHandlers.ListTokens)))
	mux.Handle("POST /api/admin/access-tokens/{token}/active", guard(http.HandlerFunc(adminHandlers.SetActive)))
	mux.Handle("POST /api/admin/access-tokens/{token}/expiry", guard(http.HandlerFunc(adminHandlers.SetExpiry)))

	jarOpts := cookiejar.Options{Secure: !services.IsDev, Domain: services.CookieDomain}

	var handler http.Handler = mux
	handler = AdminGate(services.Auth, logger)(handler)
	handler = WithCookieJar(jarOpts)(handler)
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler
}
