package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginPage(t *testing.T) {
	t.Run("echoes a safe redirect target", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/login?redirect_uri=%2Fadmin%2Ftokens", nil)
		rec := httptest.NewRecorder()
		LoginPage(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), `value="/admin/tokens"`)
	})

	t.Run("rejects off-site redirect targets", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/login?redirect_uri=https%3A%2F%2Fevil.example%2Fphish", nil)
		rec := httptest.NewRecorder()
		LoginPage(rec, req)

		assert.NotContains(t, rec.Body.String(), "evil.example")
		assert.Contains(t, rec.Body.String(), `value="/"`)
	})

	t.Run("defaults to root without a target", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		rec := httptest.NewRecorder()
		LoginPage(rec, req)

		assert.Contains(t, rec.Body.String(), `value="/"`)
	})
}
