package webapi

import (
	"net/http"
	"regexp"

	"github.com/taskbox/taskbox/internal/logutil"
)

var bearerTokenRE = regexp.MustCompile(`^Bearer ([^\s]+)$`)

// BearerToken extracts the token from the standard Authorization
// header. ok is false when the header is absent or not bearer-shaped.
func BearerToken(r *http.Request) (token string, ok bool) {
	groups := bearerTokenRE.FindStringSubmatch(r.Header.Get("Authorization"))
	if len(groups) == 0 {
		return "", false
	}
	return groups[1], true
}

// WithRequestLogger runs h with a request-scoped logger in the context.
func WithRequestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(logutil.WithRequest(r)))
	})
}
