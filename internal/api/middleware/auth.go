package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

const (
	msgMissingToken = "missing bearer token"
	msgInvalidToken = "invalid token"
	msgForbidden    = "operation not allowed for this role"
)

type sessionKey struct{}

// Claims of the access token: sub is the patron id, role is "patron" or "operator"
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// WithSession stores the caller's session in ctx
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// GetSession returns the session set by Auth
func GetSession(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}

// Auth validates an HS256 bearer token and puts a domain.Session into the request context
func Auth(secret []byte) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			var claims Claims
			_, err := parser.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims, func(*jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			session, ok := sessionFromClaims(&claims)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func sessionFromClaims(c *Claims) (domain.Session, bool) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.Session{}, false
	}
	role := domain.Role(c.Role)
	if !role.IsValid() {
		return domain.Session{}, false
	}
	return domain.Session{PatronID: id, Role: role}, true
}

// RequireRole rejects sessions whose role is not listed. Must run after Auth.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			if !allowed[session.Role] {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
