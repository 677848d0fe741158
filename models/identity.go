package models

import "strings"

// Identity is the outcome of credential resolution: Unauthorized or a
// composite label such as "KEY/svcA" or "SESSION/alice".
type Identity string

const (
	// Unauthorized is the identity of a caller without a valid credential.
	Unauthorized Identity = "UNAUTHORIZED"

	// KeyTag prefixes identities resolved from the key registry.
	KeyTag = "KEY"

	// SessionTag prefixes identities resolved from an active session. It is
	// also the registry label that enables session fallback for a route.
	SessionTag = "SESSION"
)

// KeyIdentity returns the identity for a registry label.
func KeyIdentity(label string) Identity {
	return Identity(KeyTag + "/" + label)
}

// SessionIdentity returns the identity for a session username.
func SessionIdentity(username string) Identity {
	return Identity(SessionTag + "/" + username)
}

func (i Identity) Authorized() bool {
	return i != "" && i != Unauthorized
}

// Label returns the part after the tag, e.g. "svcA" for "KEY/svcA".
func (i Identity) Label() string {
	_, label, _ := strings.Cut(string(i), "/")
	return label
}

func (i Identity) String() string {
	if i == "" {
		return string(Unauthorized)
	}
	return string(i)
}

// CredentialSource names where a caller credential was found.
type CredentialSource string

const (
	SourceNone          CredentialSource = "none"
	SourceAPIKeyHeader  CredentialSource = "apikey"
	SourceAuthorization CredentialSource = "authorization"
	SourceHeaderScan    CredentialSource = "header-scan"
	SourceSession       CredentialSource = "session"
)

// KeyEntry is one label→key pair of the key registry.
type KeyEntry struct {
	Label string `json:"label" yaml:"label"`
	Key   string `json:"key" yaml:"key"`
}

// AuthPolicy describes what a protected route accepts.
type AuthPolicy struct {
	// Keys restricts the registry labels that may authenticate. Nil allows
	// every label in the registry.
	Keys []string `json:"keys,omitempty"`

	// AllowSession enables the session fallback.
	AllowSession bool `json:"allow_session,omitempty"`
}
