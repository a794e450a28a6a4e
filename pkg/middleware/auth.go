package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fitbook/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountEnsurer upserts the account row on first authenticated access.
type AccountEnsurer interface {
	EnsureAccount(ctx context.Context, accountID uuid.UUID, email string) error
}

type authClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the bearer token and loads the account identity into
// the request context. The subject claim carries the account ID.
func Auth(secret string, accounts AccountEnsurer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Authorization header required")
				return
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Invalid token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			accountID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Invalid subject claim", zap.String("sub", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid token subject")
				return
			}

			if err := accounts.EnsureAccount(r.Context(), accountID, claims.Email); err != nil {
				logger.Error("Failed to ensure account",
					zap.Error(err),
					zap.String("account_id", accountID.String()),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetAccountContext(r.Context(), accountID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the role claim set by Auth to be "admin".
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok || role != "admin" {
				accountID, _ := utils.GetAccountIDFromContext(r.Context())
				logger.Warn("Admin access denied",
					zap.String("account_id", accountID.String()),
					zap.String("role", role),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
