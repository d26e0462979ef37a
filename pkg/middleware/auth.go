package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/pkg/auth"
	"github.com/taskvault/taskvault/pkg/contextkeys"
	"github.com/taskvault/taskvault/pkg/httputil"
)

// Auth verifies the bearer token on every protected request and attaches
// the authenticated principal to the request context.
type Auth struct {
	tokens *auth.TokenService
	log    *logrus.Logger
}

// NewAuth creates the authentication middleware. A nil logger falls back
// to the logrus default.
func NewAuth(tokens *auth.TokenService, log *logrus.Logger) *Auth {
	if log == nil {
		log = logrus.New()
	}
	return &Auth{tokens: tokens, log: log}
}

// Handler wraps an HTTP handler with bearer-token authentication.
func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Format: "Bearer <token>"
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteUnauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}

		principal, err := claims.Principal()
		if err != nil {
			httputil.WriteUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := contextkeys.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
