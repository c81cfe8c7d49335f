package middleware

import (
	"context"
	"net/http"
	"strings"

	"aloeherbal-be/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

// Context key for token claims
type contextKey string

const TokenClaimsKey contextKey = "jwtClaims"

// RequireAuth guards internal endpoints with a bearer token. Unlike the
// verify endpoint, these are not meant for the payer's browser.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				return key, nil
			})
			if err != nil || !token.Valid {
				utils.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				ctx := context.WithValue(r.Context(), TokenClaimsKey, claims)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}
