package auth

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophfav/internal/common"
)

// Gate checks the bearer credential of protected requests. It only trusts
// the signature: no store lookup is made, so a token stays valid for a user
// that has since disappeared until it expires.
type Gate struct {
	secret []byte
}

func NewGate(secretKey string) *Gate {
	return &Gate{secret: []byte(secretKey)}
}

// Authenticate resolves an Authorization header value of the form
// "jwt <token>" to the caller identity. Every failure is reported as
// common.ErrUnauthenticated wrapping the underlying reason.
func (g *Gate) Authenticate(header string) (Identity, error) {
	token, err := TokenFromHeader(header)
	if err != nil {
		return Identity{}, err
	}

	id, err := ParseToken(token, g.secret)
	if err != nil {
		return Identity{}, unauthenticated(err)
	}
	return id, nil
}

// TokenFromHeader extracts the token from "jwt <token>". The scheme is
// compared case-sensitively.
func TokenFromHeader(header string) (string, error) {
	if header == "" {
		return "", unauthenticated(errMissingHeader)
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != common.AuthScheme || token == "" || strings.ContainsAny(token, " \t") {
		return "", unauthenticated(errBadScheme)
	}
	return token, nil
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a copy of ctx carrying id for the rest of the request.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity placed by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
