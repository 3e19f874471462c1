// Package middleware provides HTTP middleware for session authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionIDKey is the context key for the authenticated session ID.
const sessionIDKey ContextKey = "sessionID"

// TokenValidator verifies a bearer token and returns the session it names.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

// bearerToken returns the token from an Authorization header.
// present is false when no header was sent at all.
func bearerToken(r *http.Request) (token string, present bool, ok bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false, false
	}

	// "Bearer" is matched case-insensitively
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true, false
	}
	return parts[1], true, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized", "message": message})
}

// RequireSession rejects requests without a valid session token.
func RequireSession(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present, ok := bearerToken(r)
			if !present {
				unauthorized(w, "upload a resume first; a session token is required")
				return
			}
			if !ok {
				unauthorized(w, "malformed Authorization header")
				return
			}

			sessionID, err := tokens.ValidateToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}

// OptionalSession attaches the session when a token is sent. A token that is sent but
// invalid is still rejected.
func OptionalSession(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present, ok := bearerToken(r)
			if !present {
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				unauthorized(w, "malformed Authorization header")
				return
			}

			sessionID, err := tokens.ValidateToken(token)
			if err != nil {
				unauthorized(w, "invalid or expired session token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
		})
	}
}

// WithSessionID stores a session ID in ctx.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// GetSessionID extracts the authenticated session ID from the request context.
func GetSessionID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(sessionIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("session ID not found in request context")
	}
	return id, nil
}
