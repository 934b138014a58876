package common

const (
	// AuthorizationHeaderName carries the bearer credential on protected requests.
	AuthorizationHeaderName = "Authorization"

	// AuthScheme is the literal, case-sensitive scheme preceding the token,
	// e.g. "jwt eyJhbGciOi...".
	AuthScheme = "jwt"
)
