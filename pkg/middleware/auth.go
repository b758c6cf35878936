/**
 * @description
 * This package provides middleware for the HTTP server, specifically for
 * handling authentication and authorization. Merchant-admin sessions carry
 * an HS256 JWT whose `sub` claim is the store id.
 */
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthContextKey is a custom type for the context key to avoid collisions.
type AuthContextKey string

// StoreIDKey is the key used to store the authenticated store id in the
// request context.
const StoreIDKey AuthContextKey = "storeID"

// AuthMiddleware creates a middleware that validates the session JWT and
// extracts the store id from its subject claim.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			storeID, err := claims.GetSubject()
			if err != nil || storeID == "" {
				http.Error(w, "Store ID not found in token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), StoreIDKey, storeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetStoreIDFromContext retrieves the authenticated store id from the
// request context. It returns an empty string if none is present.
func GetStoreIDFromContext(ctx context.Context) string {
	storeID, ok := ctx.Value(StoreIDKey).(string)
	if !ok {
		return ""
	}
	return storeID
}
