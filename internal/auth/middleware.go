package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"tutortribe/internal/db"
	"tutortribe/internal/entities"
)

// Identity is the authenticated caller decoded from the access token.
type Identity struct {
	ID       int
	Username string
	Role     db.Role
}

type contextKey struct{}

func NewContext(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, ident)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(contextKey{}).(*Identity)
	return ident, ok
}

// Middleware verifies the bearer token and stores the caller identity in the
// request context.
func Middleware(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeUnauthorized(w, "Missing or invalid authorization header. Expected: Bearer <token>")
				return
			}

			raw := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					writeUnauthorized(w, "Token has expired")
				} else {
					writeUnauthorized(w, "Invalid token")
				}
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				writeUnauthorized(w, "Invalid token")
				return
			}

			sub, _ := claims["sub"].(float64)
			username, _ := claims["username"].(string)
			role, _ := claims["role"].(string)
			if !db.Role(role).Valid() {
				writeUnauthorized(w, "Invalid token")
				return
			}
			ident := &Identity{
				ID:       int(sub),
				Username: username,
				Role:     db.Role(role),
			}
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), ident)))
		})
	}
}

// RequireRole gates a handler to an allowed set of roles. 401 when there is no
// identity at all, 403 when the role is not in the set.
func RequireRole(next http.HandlerFunc, roles ...db.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := FromContext(r.Context())
		if !ok {
			writeUnauthorized(w, "Authentication required")
			return
		}

		for _, role := range roles {
			if ident.Role == role {
				next(w, r)
				return
			}
		}

		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}
		writeErrorBody(w, http.StatusForbidden, "forbidden",
			fmt.Sprintf("Access denied. Required role(s): %s. Your role: %s", strings.Join(names, ", "), ident.Role))
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	writeErrorBody(w, http.StatusUnauthorized, "unauthorized", description)
}

func writeErrorBody(w http.ResponseWriter, status int, kind, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(entities.ErrorResponse{Error: kind, ErrorDescription: description})
}
