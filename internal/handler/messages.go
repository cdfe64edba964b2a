// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// MessageListData holds data for the contact message inbox template.
type MessageListData struct {
	Messages    []model.ContactMessage
	UnreadCount int64
	Filter      store.MessageFilter
	Pagination  Pagination
}

// ListMessages handles GET /dashboard/messages.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	f := store.MessageFilter{
		Status:  r.URL.Query().Get("status"),
		Search:  strings.TrimSpace(r.URL.Query().Get("q")),
		Page:    ParsePageParam(r),
		PerPage: store.PageSizeList,
	}
	if f.Status == "" {
		f.Status = store.FilterAll
	}

	total, err := h.queries.CountContactMessages(r.Context(), f)
	if err != nil {
		slog.Error("counting contact messages", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	messages, err := h.queries.ListContactMessages(r.Context(), f)
	if err != nil {
		slog.Error("listing contact messages", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	unread, err := h.queries.CountUnreadMessages(r.Context())
	if err != nil {
		slog.Error("counting unread messages", "error", err)
	}

	h.render(w, r, "dashboard/messages", render.TemplateData{
		Title: "Messages",
		Data: MessageListData{
			Messages:    messages,
			UnreadCount: unread,
			Filter:      f,
			Pagination:  pagination,
		},
	})
}

// ViewMessage handles GET /dashboard/messages/{id}. Opening a message
// marks it read.
func (h *Handler) ViewMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid message ID", "error")
		http.Redirect(w, r, "/dashboard/messages", http.StatusSeeOther)
		return
	}

	message, err := h.queries.GetContactMessageByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "Message not found", "error")
		http.Redirect(w, r, "/dashboard/messages", http.StatusSeeOther)
		return
	}

	if !message.IsRead {
		if message, err = h.queries.SetMessageRead(r.Context(), id, true); err != nil {
			slog.Error("marking message read", "message_id", id, "error", err)
		}
	}

	h.render(w, r, "dashboard/messages_view", render.TemplateData{
		Title: "Message from " + message.Name,
		Data:  message,
	})
}

// DeleteMessage handles POST /dashboard/messages/{id}/delete.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid message ID", "error")
		http.Redirect(w, r, "/dashboard/messages", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeleteContactMessage(r.Context(), id); err != nil {
		slog.Error("deleting contact message", "message_id", id, "error", err)
		h.renderer.SetFlash(r, "Error deleting message", "error")
		http.Redirect(w, r, "/dashboard/messages", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindMessage, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "Message deleted", "success")
	http.Redirect(w, r, "/dashboard/messages", http.StatusSeeOther)
}
