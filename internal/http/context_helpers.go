package httpx

import (
	"context"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across packages.
type identityKey struct{}

// jarKey carries the request's cookie jar.
type jarKey struct{}

// SetIdentityInContext returns a child context that carries the given identity.
// If identity is nil, the original ctx is returned unchanged.
func SetIdentityInContext(ctx context.Context, ident *domainauth.Identity) context.Context {
	if ident == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, ident)
}

// GetIdentityFromContext returns the identity from context and a boolean indicating presence.
func GetIdentityFromContext(ctx context.Context) (*domainauth.Identity, bool) {
	if ident, ok := ctx.Value(identityKey{}).(*domainauth.Identity); ok && ident != nil {
		return ident, true
	}
	return nil, false
}

// SetJarInContext returns a child context that carries the request's cookie jar.
func SetJarInContext(ctx context.Context, jar *cookiejar.Jar) context.Context {
	if jar == nil {
		return ctx
	}
	return context.WithValue(ctx, jarKey{}, jar)
}

// GetJarFromContext returns the request's cookie jar. Handlers running under
// the jar middleware always find one; the empty jar fallback keeps direct
// handler tests working without the middleware stack.
func GetJarFromContext(ctx context.Context) *cookiejar.Jar {
	if jar, ok := ctx.Value(jarKey{}).(*cookiejar.Jar); ok && jar != nil {
		return jar
	}
	return cookiejar.New(cookiejar.Options{})
}
