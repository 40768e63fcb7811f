package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// mockGateAuth is a configurable AuthVerifier for gate and guard tests.
type mockGateAuth struct {
	verifyFunc func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error)
	adminEmail string
}

func (m *mockGateAuth) Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, jar)
	}
	return nil, nil
}

func (m *mockGateAuth) Decide(ident *domainauth.Identity) domainauth.Decision {
	return domainauth.Decide(ident, m.adminEmail)
}

func adminIdentity() *domainauth.Identity {
	return &domainauth.Identity{UserID: "u1", Email: "admin@example.com", ExpiresAt: time.Now().Add(time.Hour)}
}

func gateWith(auth AuthVerifier, next http.Handler) http.Handler {
	return AdminGate(auth, slog.New(slog.NewTextHandler(io.Discard, nil)))(next)
}

func TestAdminGate_UnprotectedPathPassesThrough(t *testing.T) {
	called := false
	gate := gateWith(&mockGateAuth{
		verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
			t.Error("Verify should not run for unprotected paths")
			return nil, nil
		},
	}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/polls", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGate_LoginPageIsOpen(t *testing.T) {
	called := false
	gate := gateWith(&mockGateAuth{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/login?redirect_uri=%2Fadmin", nil)
	gate.ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestAdminGate_NoIdentityRedirectsToLogin(t *testing.T) {
	gate := gateWith(&mockGateAuth{adminEmail: "admin@example.com"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/tokens?page=2", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?redirect_uri=%2Fadmin%2Ftokens%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestAdminGate_NoIdentityOnAPIPathReturns401(t *testing.T) {
	gate := gateWith(&mockGateAuth{adminEmail: "admin@example.com"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication_required")
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestAdminGate_NonAdminIdentityForbidden(t *testing.T) {
	auth := &mockGateAuth{
		adminEmail: "admin@example.com",
		verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
			return &domainauth.Identity{UserID: "u2", Email: "user@example.com"}, nil
		},
	}
	gate := gateWith(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"FORBIDDEN"}`, rec.Body.String())
}

func TestAdminGate_AdminIdentityAllowedWithContext(t *testing.T) {
	auth := &mockGateAuth{
		adminEmail: "admin@example.com",
		verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
			return adminIdentity(), nil
		},
	}
	gate := gateWith(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := GetIdentityFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "admin@example.com", ident.Email)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGate_VerifyErrorFailsClosed(t *testing.T) {
	auth := &mockGateAuth{
		adminEmail: "admin@example.com",
		verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
			return nil, errors.New("userinfo timeout")
		},
	}
	gate := gateWith(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestWithCookieJar_StagedCookiesReachDenials(t *testing.T) {
	// A credential rotated during verification must reach the client even
	// when the request is denied.
	auth := &mockGateAuth{
		adminEmail: "admin@example.com",
		verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
			jar.Stage("cva_session_token", "rotated", time.Hour)
			return &domainauth.Identity{UserID: "u2", Email: "user@example.com"}, nil
		},
	}
	handler := WithCookieJar(cookiejar.Options{})(gateWith(auth, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not be called")
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cva_session_token", cookies[0].Name)
	assert.Equal(t, "rotated", cookies[0].Value)
}

func TestWithCookieJar_AppliesWithoutBodyWrite(t *testing.T) {
	handler := WithCookieJar(cookiejar.Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jar := GetJarFromContext(r.Context())
		jar.Stage("a", "1", 0)
		// No explicit WriteHeader or Write.
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "a", cookies[0].Name)
}

func TestWithCookieJar_ContextCarriesInboundCookies(t *testing.T) {
	handler := WithCookieJar(cookiejar.Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jar := GetJarFromContext(r.Context())
		v, ok := jar.Get("session")
		assert.True(t, ok)
		assert.Equal(t, "abc", v)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "abc"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID", func(t *testing.T) {
		var seen string
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestIDFromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
	})

	t.Run("honors an inbound ID", func(t *testing.T) {
		var seen string
		handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestIDFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "req-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	})
}

func TestRecover(t *testing.T) {
	handler := Recover(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIsProtectedPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/admin", true},
		{"/admin/tokens", true},
		{"/api/admin", true},
		{"/api/admin/access-tokens", true},
		{"/admin/login", false},
		{"/admin/login/", false},
		{"/administrator", false},
		{"/api/adminx", false},
		{"/api/polls", false},
		{"/", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isProtectedPath(tt.path))
		})
	}
}

func TestSafeRedirectPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "rooted path", raw: "/admin/tokens", want: "/admin/tokens"},
		{name: "path with query", raw: "/admin/tokens?page=2", want: "/admin/tokens?page=2"},
		{name: "absolute URL rejected", raw: "https://evil.example/phish", want: ""},
		{name: "protocol-relative rejected", raw: "//evil.example/phish", want: ""},
		{name: "relative path rejected", raw: "admin", want: ""},
		{name: "empty", raw: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeRedirectPath(tt.raw))
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("uses the gate's context identity", func(t *testing.T) {
		auth := &mockGateAuth{
			adminEmail: "admin@example.com",
			verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
				t.Error("Verify should not run when the gate already supplied an identity")
				return nil, nil
			},
		}
		called := false
		guard := RequireAdmin(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil)
		req = req.WithContext(SetIdentityInContext(req.Context(), adminIdentity()))
		guard.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
	})

	t.Run("re-verifies when the gate did not run", func(t *testing.T) {
		auth := &mockGateAuth{
			adminEmail: "admin@example.com",
			verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
				return adminIdentity(), nil
			},
		}
		called := false
		guard := RequireAdmin(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		guard.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil))
		assert.True(t, called)
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		auth := &mockGateAuth{
			adminEmail: "admin@example.com",
			verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
				return &domainauth.Identity{UserID: "u2", Email: "user@example.com"}, nil
			},
		}
		guard := RequireAdmin(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		}))

		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"FORBIDDEN"}`, rec.Body.String())
	})

	t.Run("no identity gets 401", func(t *testing.T) {
		guard := RequireAdmin(&mockGateAuth{adminEmail: "admin@example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		}))

		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verify error fails closed", func(t *testing.T) {
		auth := &mockGateAuth{
			adminEmail: "admin@example.com",
			verifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
				return nil, errors.New("userinfo timeout")
			},
		}
		guard := RequireAdmin(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Handler should not be called")
		}))

		rec := httptest.NewRecorder()
		guard.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/access-tokens", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
