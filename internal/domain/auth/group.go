package auth

import "regexp"

// groupPattern matches the leading group segment of an access token,
// e.g. "GROUPA-2026-01" -> "GROUPA". The label always comes from the token
// text itself, never from client input or the catalog row.
var groupPattern = regexp.MustCompile(`^(GROUP[A-Z])-`)

// ParseGroupLabel derives the group label from an access token's leading
// segment. It is deliberately independent from the catalog lookup so the
// derivation rule stays testable on its own.
func ParseGroupLabel(token string) (string, bool) {
	m := groupPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return m[1], true
}
