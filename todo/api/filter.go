package api

import (
	"context"
	"net/http"

	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/webapi"
)

type (
	// TokenVerifier resolves a bearer token into an identity. Both
	// the in-process verifier and the remote account-service client
	// satisfy it, so the coupling level is a deployment choice.
	TokenVerifier interface {
		Verify(ctx context.Context, tokenString string) (token.Identity, error)
	}

	// AccessFilter rejects any request that does not carry a token
	// the verifier accepts. Every failure mode answers the same 401,
	// callers cannot tell a bad token from an unreachable verifier.
	AccessFilter struct {
		verifier TokenVerifier
	}

	ctxKey byte
)

const identityKey = ctxKey(1)

func NewAccessFilter(verifier TokenVerifier) *AccessFilter {
	return &AccessFilter{verifier: verifier}
}

func (f *AccessFilter) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tk, ok := webapi.BearerToken(r)
		if !ok {
			webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
			return
		}
		identity, err := f.verifier.Verify(r.Context(), tk)
		if err != nil {
			webapi.Fail(w, r, http.StatusUnauthorized, "Authentication failed")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		sensitive.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) (token.Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return token.Identity{}, false
	}
	return v.(token.Identity), true
}
