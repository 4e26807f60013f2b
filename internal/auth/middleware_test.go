// Careerpath - Hybrid Career Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careerpath

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	m := newTestManager(t, time.Hour)
	client, err := m.GenerateToken("svc", RoleClient)
	if err != nil {
		t.Fatal(err)
	}
	admin, err := m.GenerateToken("ops", RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mode   string
		header string
		role   string
		want   int
	}{
		{"none mode passes", ModeNone, "", "", http.StatusOK},
		{"missing token", ModeJWT, "", "", http.StatusUnauthorized},
		{"wrong scheme", ModeJWT, "Basic abc", "", http.StatusUnauthorized},
		{"invalid token", ModeJWT, "Bearer nope", "", http.StatusUnauthorized},
		{"valid token", ModeJWT, "Bearer " + client, "", http.StatusOK},
		{"role mismatch", ModeJWT, "Bearer " + client, RoleAdmin, http.StatusForbidden},
		{"admin satisfies any role", ModeJWT, "Bearer " + admin, "operator", http.StatusOK},
		{"none mode ignores role", ModeNone, "", RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewMiddleware(m, tt.mode, nil)
			h := okHandler()
			if tt.role != "" {
				h = mw.RequireRole(tt.role)(h)
			}
			h = mw.Authenticate(h)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/ml/train", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAuthenticate_StoresClaims(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, err := m.GenerateToken("svc", RoleClient)
	if err != nil {
		t.Fatal(err)
	}

	var subject string
	h := NewMiddleware(m, ModeJWT, nil).Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			subject = claims.Subject
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if subject != "svc" {
		t.Errorf("subject = %q, want svc", subject)
	}
}
