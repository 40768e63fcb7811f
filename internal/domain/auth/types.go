package auth

// Package auth contains domain-level types for identities and access grants.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated principal returned by the identity
// provider. Adapters map provider-specific claims into this shape. It is never
// persisted by the gate; its lifetime is one verification call.
type Identity struct {
	UserID    string // stable subject identifier from the provider
	Email     string
	ExpiresAt time.Time // absolute expiry of the backing credential, zero when unknown
}

// Grant is the result of a successful access-token exchange: a coarse group
// partition derived from the token text, valid until ExpiresAt.
type Grant struct {
	Token     string
	Group     string
	ExpiresAt time.Time
}
