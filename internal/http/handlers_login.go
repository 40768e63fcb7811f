package httpx

import (
	"html/template"
	"net/http"
)

// loginPage is the minimal sign-in page the gate redirects browsers to. The
// client app handles the actual provider flow; this page only preserves the
// post-login destination.
var loginPage = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Sign in</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
  <main>
    <h1>Sign in required</h1>
    <p>You need to sign in to reach this page.</p>
    <form method="GET" action="/">
      <input type="hidden" name="redirect_uri" value="{{.RedirectURI}}">
      <button type="submit">Continue to sign in</button>
    </form>
  </main>
</body>
</html>
`))

// LoginPage renders the sign-in page, echoing a sanitized redirect_uri so the
// client can return the user where they started.
// GET /admin/login.
func LoginPage(w http.ResponseWriter, r *http.Request) {
	redirectURI := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	if redirectURI == "" {
		redirectURI = "/"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginPage.Execute(w, struct{ RedirectURI string }{RedirectURI: redirectURI}); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
