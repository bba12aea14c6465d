package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
)

type contextKey string

const merchantIDKey contextKey = "merchant_id"

// RequireMerchant validates the bearer token and stores the merchant id in
// the request context. Requests without a valid token get 401.
func RequireMerchant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == "" || raw == header {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims := &jwt.StandardClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return signingKey(), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), merchantIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MerchantID returns the authenticated merchant id, or "" outside
// RequireMerchant.
func MerchantID(ctx context.Context) string {
	id, _ := ctx.Value(merchantIDKey).(string)
	return id
}
