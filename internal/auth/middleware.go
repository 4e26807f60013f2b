// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/careerpath/internal/logging"
)

// Authentication modes.
const (
	ModeNone = "none"
	ModeJWT  = "jwt"
)

type contextKey string

// ClaimsContextKey stores the validated *Claims in the request context.
const ClaimsContextKey contextKey = "claims"

// ErrorResponder writes an error response. It lets the API keep its response
// envelope for authentication failures.
type ErrorResponder func(w http.ResponseWriter, status int, message string)

// Middleware enforces bearer-token authentication.
type Middleware struct {
	jwtManager *JWTManager
	mode       string
	respond    ErrorResponder
}

// NewMiddleware creates the middleware. jwtManager may be nil when mode is
// ModeNone. A nil responder falls back to http.Error.
func NewMiddleware(jwtManager *JWTManager, mode string, respond ErrorResponder) *Middleware {
	if respond == nil {
		respond = func(w http.ResponseWriter, status int, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{jwtManager: jwtManager, mode: mode, respond: respond}
}

// Authenticate rejects requests without a valid bearer token when running in
// ModeJWT. In ModeNone every request passes.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode != ModeJWT {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			m.respond(w, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Token validation failed")
			m.respond(w, http.StatusUnauthorized, "Unauthorized: invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated requests whose role is neither role nor
// RoleAdmin. It must run after Authenticate. In ModeNone every request passes.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.mode != ModeJWT {
				next.ServeHTTP(w, r)
				return
			}

			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				m.respond(w, http.StatusForbidden, "Forbidden: invalid claims")
				return
			}
			if claims.Role != role && claims.Role != RoleAdmin {
				m.respond(w, http.StatusForbidden, "Forbidden: insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("unauthorized: missing token")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("unauthorized: invalid authorization header")
	}
	return parts[1], nil
}
