package httpx

// Paths the edge gate protects and the login page it redirects to.
const (
	AdminPrefix    = "/admin"
	AdminAPIPrefix = "/api/admin"
	LoginPath      = "/admin/login"
)
