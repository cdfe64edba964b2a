// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
)

func requestWithUser(user *model.User, target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if user != nil {
		ctx := context.WithValue(r.Context(), ContextKeyUser, *user)
		r = r.WithContext(ctx)
	}
	return r
}

func TestRequireStaff(t *testing.T) {
	called := false
	handler := RequireStaff(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	tests := []struct {
		name       string
		user       *model.User
		wantStatus int
		wantCalled bool
	}{
		{"anonymous", nil, http.StatusForbidden, false},
		{"non-staff", &model.User{ID: 1}, http.StatusForbidden, false},
		{"staff", &model.User{ID: 1, IsStaff: true}, http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, requestWithUser(tt.user, "/dashboard"))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestPreviewRequested(t *testing.T) {
	staff := &model.User{ID: 1, IsStaff: true}
	visitor := &model.User{ID: 2}

	tests := []struct {
		name   string
		user   *model.User
		target string
		want   bool
	}{
		{"staff with preview flag", staff, "/projects/demo?preview=1", true},
		{"staff with all flag", staff, "/projects?all=1", true},
		{"staff without flag", staff, "/projects/demo", false},
		{"non-staff with preview flag", visitor, "/projects/demo?preview=1", false},
		{"anonymous with preview flag", nil, "/projects/demo?preview=1", false},
		{"wrong flag value", staff, "/projects/demo?preview=yes", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviewRequested(requestWithUser(tt.user, tt.target)); got != tt.want {
				t.Errorf("PreviewRequested = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetUserAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(r) != nil {
		t.Error("GetUser on bare request should be nil")
	}
}
