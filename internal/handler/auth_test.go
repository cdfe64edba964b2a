// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Maimoon-github/Professional-Portfolio/internal/auth"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

func postLoginForm(t *testing.T, h *Handler, form url.Values) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/dashboard/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = requestWithSession(h.sessions, req)
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec, req
}

func TestLoginForm(t *testing.T) {
	h, _ := testHandler(t)

	t.Run("renders the sign in page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/login", nil)
		req = requestWithSession(h.sessions, req)
		rec := httptest.NewRecorder()
		h.LoginForm(rec, req)

		assertStatus(t, rec.Code, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "Sign In") {
			t.Error("body should contain the sign in heading")
		}
	})

	t.Run("redirects when already signed in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/login", nil)
		req = requestWithSession(h.sessions, req)
		h.sessions.Put(req.Context(), middleware.SessionKeyUserID, int64(1))
		rec := httptest.NewRecorder()
		h.LoginForm(rec, req)

		assertStatus(t, rec.Code, http.StatusSeeOther)
		if loc := rec.Header().Get("Location"); loc != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard", loc)
		}
	})
}

func TestLogin(t *testing.T) {
	h, queries := testHandler(t)

	hash, err := auth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        "owner@example.com",
		PasswordHash: hash,
		Name:         "Owner",
		IsStaff:      true,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		rec, req := postLoginForm(t, h, url.Values{
			"email":    {"Owner@Example.com"},
			"password": {"correct horse battery"},
		})

		assertStatus(t, rec.Code, http.StatusSeeOther)
		if loc := rec.Header().Get("Location"); loc != "/dashboard" {
			t.Errorf("Location = %q, want /dashboard", loc)
		}
		if got := h.sessions.GetInt64(req.Context(), middleware.SessionKeyUserID); got != user.ID {
			t.Errorf("session user_id = %d, want %d", got, user.ID)
		}

		stored, err := queries.GetUserByID(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("GetUserByID: %v", err)
		}
		if !stored.LastLoginAt.Valid {
			t.Error("last_login_at should be set after sign in")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec, req := postLoginForm(t, h, url.Values{
			"email":    {"owner@example.com"},
			"password": {"wrong"},
		})

		assertStatus(t, rec.Code, http.StatusSeeOther)
		if loc := rec.Header().Get("Location"); loc != "/dashboard/login" {
			t.Errorf("Location = %q, want /dashboard/login", loc)
		}
		if got := h.sessions.GetInt64(req.Context(), middleware.SessionKeyUserID); got != 0 {
			t.Errorf("session user_id = %d, want 0", got)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		rec, _ := postLoginForm(t, h, url.Values{
			"email":    {"nobody@example.com"},
			"password": {"whatever"},
		})

		assertStatus(t, rec.Code, http.StatusSeeOther)
		if loc := rec.Header().Get("Location"); loc != "/dashboard/login" {
			t.Errorf("Location = %q, want /dashboard/login", loc)
		}
	})
}

func TestLogout(t *testing.T) {
	h, _ := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/logout", nil)
	req = requestWithSession(h.sessions, req)
	h.sessions.Put(req.Context(), middleware.SessionKeyUserID, int64(7))
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assertStatus(t, rec.Code, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != "/dashboard/login" {
		t.Errorf("Location = %q, want /dashboard/login", loc)
	}
	if got := h.sessions.GetInt64(req.Context(), middleware.SessionKeyUserID); got != 0 {
		t.Errorf("session user_id = %d after logout, want 0", got)
	}
}
