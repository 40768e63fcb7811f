// Package cookiejar implements the gate's cookie codec: an explicit,
// request-scoped jar that reads the inbound cookie set, accumulates staged
// response cookies, and applies them once at the outermost handler. Threading
// the jar through calls keeps cookie mutation visible instead of letting
// library code write to the response from deep inside a call stack.
package cookiejar

import (
	"net/http"
	"time"
)

// Options controls the attributes applied to every staged cookie.
type Options struct {
	// Secure marks staged cookies Secure; leave false only in local development.
	Secure bool
	// Domain is the cookie domain; empty uses the request domain.
	Domain string
}

// Jar holds one request's inbound cookies and the cookies staged for its
// eventual response. A missing cookie is absence, not failure; no method
// returns an error.
type Jar struct {
	opts    Options
	inbound map[string]string
	staged  []*http.Cookie
}

// New returns an empty jar, useful in tests and non-HTTP callers.
func New(opts Options) *Jar {
	return &Jar{opts: opts, inbound: map[string]string{}}
}

// FromRequest snapshots the request's cookies into a new jar.
func FromRequest(r *http.Request, opts Options) *Jar {
	j := New(opts)
	for _, c := range r.Cookies() {
		j.inbound[c.Name] = c.Value
	}
	return j
}

// Get returns the current value of the named cookie. A value staged during
// this request (for example a refreshed credential) shadows the inbound one,
// so later calls in the same request observe the rotation.
func (j *Jar) Get(name string) (string, bool) {
	for i := len(j.staged) - 1; i >= 0; i-- {
		if j.staged[i].Name == name {
			if j.staged[i].MaxAge < 0 {
				return "", false
			}
			return j.staged[i].Value, true
		}
	}
	v, ok := j.inbound[name]
	return v, ok
}

// Stage queues a cookie for the response with the jar's standard attributes:
// HttpOnly, SameSite=Lax, Path=/, Secure per Options. ttl <= 0 stages a
// session cookie.
func (j *Jar) Stage(name, value string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   j.opts.Domain,
		HttpOnly: true,
		Secure:   j.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
		c.Expires = time.Now().Add(ttl).UTC()
	}
	j.staged = append(j.staged, c)
}

// Clear stages immediate expiry for the named cookie, mirroring the
// attributes used when setting it so browsers honor the deletion.
func (j *Jar) Clear(name string) {
	j.staged = append(j.staged, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   j.opts.Domain,
		HttpOnly: true,
		Secure:   j.opts.Secure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Staged returns the queued cookies in stage order, later stages for the
// same name superseding earlier ones.
func (j *Jar) Staged() []*http.Cookie {
	byName := make(map[string]int, len(j.staged))
	out := make([]*http.Cookie, 0, len(j.staged))
	for _, c := range j.staged {
		if i, ok := byName[c.Name]; ok {
			out[i] = c
			continue
		}
		byName[c.Name] = len(out)
		out = append(out, c)
	}
	return out
}

// Apply writes every staged cookie onto the response. The outermost handler
// for a request calls this exactly once, on every outcome including denials:
// dropping refreshed credentials on a deny forces a silent re-login later.
func (j *Jar) Apply(w http.ResponseWriter) {
	for _, c := range j.Staged() {
		http.SetCookie(w, c)
	}
}
