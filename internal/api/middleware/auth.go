package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
)

type contextKey string

const (
	actorContextKey contextKey = "actor"
	roleContextKey  contextKey = "role"
)

// Роли, известные сервису
const (
	RoleSalonOwner    = "salon_owner"
	RolePlatformAdmin = "platform_admin"
)

// Claims полезная нагрузка токена.
// Токены выпускает внешний сервис авторизации, здесь они только проверяются.
type Claims struct {
	ActorID string `json:"actorId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Auth проверяет bearer JWT и кладет actor и role в контекст запроса
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.RespondUnauthorized(w, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				handlers.RespondUnauthorized(w, "authorization header must use Bearer scheme")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				handlers.RespondUnauthorized(w, "invalid or expired token")
				return
			}

			if claims.ActorID == "" || claims.Role == "" {
				handlers.RespondUnauthorized(w, "token is missing required claims")
				return
			}

			ctx := context.WithValue(r.Context(), actorContextKey, claims.ActorID)
			ctx = context.WithValue(ctx, roleContextKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает запрос только для указанной роли.
// Применяется после Auth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				handlers.RespondForbidden(w, handlers.CodeAccessDenied, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ActorFromContext возвращает идентификатор актора из контекста запроса
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorContextKey).(string)
	return actor
}

// RoleFromContext возвращает роль из контекста запроса
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleContextKey).(string)
	return role
}
