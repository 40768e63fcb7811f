package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

var errAuthenticationRequired = errors.New("authentication required")

// requestIDKey carries the request's correlation ID.
type requestIDKey struct{}

// RequestID returns a middleware that assigns each request a correlation ID,
// honoring an inbound X-Request-Id header when present.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRequestIDFromContext returns the request's correlation ID, or empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", GetRequestIDFromContext(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WithCookieJar returns a middleware that snapshots the request cookies into
// a jar, threads it through the request context, and applies every staged
// cookie onto the response. The jar flushes right before the first header
// write, so staged cookies reach the client on every outcome, denials
// included.
func WithCookieJar(opts cookiejar.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			jar := cookiejar.FromRequest(r, opts)
			jw := &jarWriter{ResponseWriter: w, jar: jar}
			next.ServeHTTP(jw, r.WithContext(SetJarInContext(r.Context(), jar)))
			// Handlers that never write a body still get their cookies out.
			jw.flush()
		})
	}
}

// jarWriter applies the jar's staged cookies exactly once, immediately
// before headers go out.
type jarWriter struct {
	http.ResponseWriter
	jar     *cookiejar.Jar
	applied bool
	wrote   bool
}

func (w *jarWriter) flush() {
	if w.applied {
		return
	}
	w.applied = true
	w.jar.Apply(w.ResponseWriter)
}

func (w *jarWriter) WriteHeader(status int) {
	w.flush()
	w.wrote = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *jarWriter) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// AuthVerifier is the slice of AuthService the gate and guard depend on.
type AuthVerifier interface {
	Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error)
	Decide(ident *domainauth.Identity) domainauth.Decision
}

// AdminGate returns the edge middleware protecting the administrator surface.
// Requests outside the protected prefixes pass through untouched. For
// protected requests the gate verifies the caller's identity and runs the
// privilege decision:
//
//   - no identity: browser paths redirect to the login page carrying the
//     original URL as redirect_uri; API paths get 401.
//   - identity without privilege: 403 with body {"error": "FORBIDDEN"}.
//   - administrator: the identity rides the request context downstream.
//
// Verification failures are treated as "no identity" so the gate fails
// closed rather than guessing.
func AdminGate(authSvc AuthVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isProtectedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			jar := GetJarFromContext(r.Context())
			ident, err := authSvc.Verify(r.Context(), jar)
			if err != nil {
				logger.ErrorContext(r.Context(), "gate verification failed, denying",
					"path", r.URL.Path, "err", err)
				ident = nil
			}

			switch authSvc.Decide(ident) {
			case domainauth.DecisionAllow:
				next.ServeHTTP(w, r.WithContext(SetIdentityInContext(r.Context(), ident)))
			case domainauth.DecisionForbid:
				WriteJSON(w, http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
			default:
				denyUnauthenticated(w, r)
			}
		})
	}
}

// isProtectedPath reports whether the path falls under the administrator
// surface. The login page itself stays open or nobody could ever sign in.
func isProtectedPath(path string) bool {
	if path == LoginPath || strings.HasPrefix(path, LoginPath+"/") {
		return false
	}
	return path == AdminPrefix ||
		strings.HasPrefix(path, AdminPrefix+"/") ||
		path == AdminAPIPrefix ||
		strings.HasPrefix(path, AdminAPIPrefix+"/")
}

// denyUnauthenticated sends browsers to the login page and API clients a 401.
func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, AdminAPIPrefix) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errAuthenticationRequired,
		})
		return
	}

	redirectPath := safeRedirectPath(r.URL.RequestURI())
	if redirectPath == "" {
		redirectPath = "/"
	}
	loginURL := LoginPath + "?redirect_uri=" + url.QueryEscape(redirectPath)
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// safeRedirectPath keeps redirect targets within the app: only rooted paths
// with no scheme or host survive.
func safeRedirectPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Scheme != "" || u.Host != "" {
		return ""
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return ""
	}
	return u.RequestURI()
}
