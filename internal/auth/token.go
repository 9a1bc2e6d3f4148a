package auth

import (
	"net/http"
	"strings"
)

const AccessTokenCookie = "access_token"

// TokenSource records where an access token was found.
type TokenSource string

const (
	SourceNone   TokenSource = ""
	SourceCookie TokenSource = "cookie"
	SourceHeader TokenSource = "header"
)

// ExtractAccessToken returns the caller's access token. The cookie wins over
// an Authorization header; the Bearer scheme is matched case-insensitively.
func ExtractAccessToken(r *http.Request) (string, TokenSource) {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value, SourceCookie
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", SourceNone
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", SourceNone
	}
	return token, SourceHeader
}
