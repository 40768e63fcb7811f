package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGroupLabel(t *testing.T) {
	tests := []struct {
		name  string
		token string
		group string
		ok    bool
	}{
		{name: "standard prefix", token: "GROUPA-7f3k2", group: "GROUPA", ok: true},
		{name: "another letter", token: "GROUPZ-xyz", group: "GROUPZ", ok: true},
		{name: "missing dash", token: "GROUPAxyz", ok: false},
		{name: "lowercase prefix rejected", token: "groupa-xyz", ok: false},
		{name: "digit instead of letter", token: "GROUP1-xyz", ok: false},
		{name: "two letters rejected", token: "GROUPAB-xyz", ok: false},
		{name: "prefix not at start", token: "xGROUPA-xyz", ok: false},
		{name: "empty token", token: "", ok: false},
		{name: "bare prefix with dash", token: "GROUPA-", group: "GROUPA", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, ok := ParseGroupLabel(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.group, group)
		})
	}
}
