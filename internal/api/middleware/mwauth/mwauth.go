//nolint:revive // exported
package mwauth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tierlab/ranklist/pkg/idwrap"
	"github.com/tierlab/ranklist/pkg/stoken"
)

type contextKey int

const claimsKey contextKey = iota

var ErrNoClaims = errors.New("no auth claims in context")

// Middleware verifies the bearer token and stores its claims in the request
// context. Requests without a valid token are rejected before any handler
// runs; the permission gate itself happens per-handler via permcheck.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			claims, err := stoken.Verify(secret, token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims stoken.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetContextClaims(ctx context.Context) (stoken.Claims, error) {
	claims, ok := ctx.Value(claimsKey).(stoken.Claims)
	if !ok {
		return stoken.Claims{}, ErrNoClaims
	}
	return claims, nil
}

func GetContextUserID(ctx context.Context) (idwrap.IDWrap, error) {
	claims, err := GetContextClaims(ctx)
	if err != nil {
		return idwrap.IDWrap{}, err
	}
	return idwrap.NewText(claims.UserID)
}

func GetContextRole(ctx context.Context) (stoken.Role, error) {
	claims, err := GetContextClaims(ctx)
	if err != nil {
		return 0, err
	}
	return claims.Role, nil
}
