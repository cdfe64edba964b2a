// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/auth"
	"github.com/Maimoon-github/Professional-Portfolio/internal/middleware"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
)

// LoginForm handles GET /dashboard/login.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessions.GetInt64(r.Context(), middleware.SessionKeyUserID) != 0 {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, r, "auth/login", render.TemplateData{Title: "Sign In"})
}

// Login handles POST /dashboard/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		// Burn a comparison so missing and wrong-password paths take
		// comparable time.
		_, _ = auth.CheckPassword(password, auth.DummyHash)
		h.renderer.SetFlash(r, "Invalid email or password", "error")
		http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
		return
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		slog.Warn("failed login attempt", "email", email)
		h.renderer.SetFlash(r, "Invalid email or password", "error")
		http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
		return
	}

	// New session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	if err := h.queries.TouchLastLogin(r.Context(), user.ID); err != nil {
		slog.Error("updating last login", "user_id", user.ID, "error", err)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if rehashed, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, rehashed); err != nil {
				slog.Error("rehashing password", "user_id", user.ID, "error", err)
			}
		}
	}

	slog.Info("user signed in", "user_id", user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /dashboard/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("destroying session", "error", err)
	}
	http.Redirect(w, r, "/dashboard/login", http.StatusSeeOther)
}
