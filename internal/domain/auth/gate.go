package auth

import "strings"

// Decision is the outcome of the gate's authorization check for one request.
type Decision int

const (
	// DecisionRedirect means no verifiable identity: send the caller to login.
	DecisionRedirect Decision = iota
	// DecisionForbid means the identity is valid but not the administrator.
	DecisionForbid
	// DecisionAllow means the caller is the configured administrator.
	DecisionAllow
)

// IsAdmin reports whether email matches the configured administrator email.
// The comparison is case-insensitive and whitespace-trimmed. An empty
// configured email means no one is an administrator, not everyone.
func IsAdmin(email, adminEmail string) bool {
	admin := strings.TrimSpace(adminEmail)
	if admin == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(email), admin)
}

// Decide maps an identity (nil when verification produced none) and the
// configured administrator email to a gate decision. Both the edge gate and
// the per-handler guard call this single function rather than duplicating
// the comparison.
func Decide(ident *Identity, adminEmail string) Decision {
	if ident == nil {
		return DecisionRedirect
	}
	if !IsAdmin(ident.Email, adminEmail) {
		return DecisionForbid
	}
	return DecisionAllow
}
