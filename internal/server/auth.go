package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a typed key for context values to avoid collisions.
type contextKey string

// scopeKey is the context key for the request's user scope.
const scopeKey contextKey = "scope"

// Authenticator parses optional bearer credentials. Requests without a
// valid token run with anonymous scope; row-level access control is
// delegated to the database layer, not enforced here.
type Authenticator struct {
	secret string
}

// NewAuthenticator creates an Authenticator. An empty secret disables
// token parsing entirely: every request is anonymous.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: secret}
}

// Subject extracts the user subject from a bearer token, or "" for
// anonymous scope. Invalid tokens degrade to anonymous rather than
// rejecting the request.
func (a *Authenticator) Subject(r *http.Request) string {
	if a.secret == "" {
		return ""
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		return []byte(a.secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		log.Printf("[auth] ignoring invalid bearer token: %v", err)
		return ""
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return subject
}

// withAuth resolves the request's scope and stores it in the context.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject := s.auth.Subject(r)
		ctx := context.WithValue(r.Context(), scopeKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Scope returns the authenticated subject for the request, or "" when
// running with anonymous scope.
func Scope(r *http.Request) string {
	subject, _ := r.Context().Value(scopeKey).(string)
	return subject
}
