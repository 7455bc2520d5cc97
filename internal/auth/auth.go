// Package auth implements the access gate: basic-auth verification against
// an externally resolved credential pair, and the CORS origin allow-list.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// Credentials is the username/password pair a trigger authenticates against.
type Credentials struct {
	Username string
	Password string
}

// CredentialSource resolves the configured credential pair. Implementations
// may call out to an external store; the gate always awaits the lookup
// before any request processing starts.
type CredentialSource interface {
	Lookup(ctx context.Context) (Credentials, error)
}

// StaticSource is a CredentialSource backed by a fixed pair.
type StaticSource Credentials

// Lookup implements CredentialSource.
func (s StaticSource) Lookup(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// Gate makes the authentication decision for one trigger.
type Gate struct {
	mode   domain.AuthMode
	source CredentialSource
}

// NewGate builds a gate. With mode none, every request passes.
func NewGate(mode domain.AuthMode, source CredentialSource) *Gate {
	return &Gate{mode: mode, source: source}
}

// Check verifies the Authorization header against the configured
// credentials. It returns nil when the request may proceed, and a
// *domain.TriggerError (401 or 403) otherwise.
func (g *Gate) Check(ctx context.Context, header http.Header) error {
	if g.mode != domain.AuthBasic {
		return nil
	}

	creds, err := g.source.Lookup(ctx)
	if err != nil {
		return domain.ErrAuthRequired(fmt.Sprintf("credential lookup failed: %v", err))
	}

	user, pass, err := parseBasic(header.Get("Authorization"))
	if err != nil {
		return domain.ErrAuthRequired(err.Error())
	}

	// Evaluate both comparisons before branching so a username mismatch
	// does not short-circuit the password check.
	userOK := digestEqual(user, creds.Username)
	passOK := digestEqual(pass, creds.Password)
	if !userOK || !passOK {
		return domain.ErrAuthRejected("invalid credentials")
	}
	return nil
}

// parseBasic extracts the username and password from a Basic auth header.
func parseBasic(header string) (string, string, error) {
	if header == "" {
		return "", "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Basic") {
		return "", "", errors.New("unsupported authorization scheme")
	}
	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", errors.New("malformed basic auth payload")
	}
	pair := strings.SplitN(string(raw), ":", 2)
	if len(pair) != 2 {
		return "", "", errors.New("malformed basic auth payload")
	}
	return pair[0], pair[1], nil
}

// digestEqual compares values through SHA-256 digests so inputs of different
// lengths still take the same comparison path.
func digestEqual(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}
