package utils

import (
	"net/http"
	"strings"

	"github.com/gi8lino/jiraterm/internal/jira"
)

// RedactToken obfuscates a secret, keeping only the first 2 and last 2
// characters and replacing the middle with '*', preserving length.
// Short secrets are fully starred.
func RedactToken(token string) string {
	n := len(token)
	if n == 0 {
		return "(not set)"
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	return token[:2] + strings.Repeat("*", n-4) + token[n-2:]
}

// ObfuscateHeader returns an obfuscated Authorization header,
// showing only the auth scheme, first 2 and last 2 characters of the token.
// Example: "Basic dZ*********X1" or "Bearer ab******yz"
func ObfuscateHeader(auth string) string {
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 {
		return "[invalid header]"
	}

	return parts[0] + " " + RedactToken(strings.TrimSpace(parts[1]))
}

// GetAuthorizationHeader returns the "Authorization" header value that would be set
// by the provided AuthFunc on a dummy HTTP request.
func GetAuthorizationHeader(authFunc jira.AuthFunc) string {
	req, _ := http.NewRequest("GET", "https://dummy", nil)
	authFunc(req)
	return req.Header.Get("Authorization")
}
