package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
// Role decides which half of the identity is meaningful: a user token carries
// an email, a police token a badge number.
type JWTClaims struct {
	Role  string
	Email string
	Badge int
	Admin bool
}

type contextKeyIdentity struct{}

// ContextKeyIdentity is exported for use in handlers.
var ContextKeyIdentity = contextKeyIdentity{}

// GetIdentity retrieves the authenticated identity from the context.
func GetIdentity(ctx context.Context) *JWTClaims {
	claims, ok := ctx.Value(ContextKeyIdentity).(*JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// bearerToken pulls the token from the Authorization header, falling back to
// the token query parameter because browser websocket clients cannot set
// headers on the upgrade request.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}
	return r.URL.Query().Get("token")
}

// RequireAuth validates the request's JWT and, when roles are given, requires
// the token's role to be one of them. The identity is stored in the request
// context for handlers.
func RequireAuth(validator JWTValidator, logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := bearerToken(r)
			if token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
					"path", r.URL.Path,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				logger.WarnContext(ctx, "forbidden - role not allowed",
					"role", claims.Role,
					"request_id", GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Role not permitted for this resource"}`))
				return
			}

			ctx = context.WithValue(ctx, ContextKeyIdentity, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
