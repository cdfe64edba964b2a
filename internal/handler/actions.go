// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// Bulk actions accepted by BulkAction.
const (
	bulkActionPublish   = "publish"
	bulkActionDraft     = "draft"
	bulkActionDelete    = "delete"
	bulkActionFeature   = "feature"
	bulkActionUnfeature = "unfeature"
)

// requirePost gates the AJAX endpoints to POST, answering anything
// else with the failure envelope.
func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "POST required")
		return false
	}
	return true
}

// ToggleFeatured handles POST /dashboard/actions/toggle-featured.
// Flips a project's featured flag and returns the new value.
func (h *Handler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id, err := formID(r, "project_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	featured, err := h.queries.ToggleProjectFeatured(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Project not found")
			return
		}
		slog.Error("toggling project featured", "project_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	h.recordAudit(r.Context(), r, model.KindProject, id, model.AuditActionUpdate, map[string]any{"featured": featured})
	writeJSONSuccess(w, map[string]any{"featured": featured})
}

// ToggleStatus handles POST /dashboard/actions/toggle-status. A draft
// record is published through the lifecycle; any other status
// collapses back to draft. content_type defaults to project.
func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id, err := formID(r, "id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	kind := r.FormValue("content_type")
	if kind == "" {
		kind = model.KindProject
	}

	var status string
	switch kind {
	case model.KindProject:
		status, err = h.toggleProjectStatus(r.Context(), id)
	case model.KindPost:
		status, err = h.togglePostStatus(r.Context(), id)
	case model.KindNews:
		status, err = h.toggleNewsStatus(r.Context(), id)
	default:
		writeJSONError(w, http.StatusBadRequest, "Invalid content type")
		return
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Record not found")
			return
		}
		slog.Error("toggling status", "kind", kind, "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	h.recordAudit(r.Context(), r, kind, id, model.AuditActionUpdate, map[string]any{"status": status})
	writeJSONSuccess(w, map[string]any{"status": status})
}

func (h *Handler) toggleProjectStatus(ctx context.Context, id int64) (string, error) {
	project, err := h.queries.GetProjectByID(ctx, id)
	if err != nil {
		return "", err
	}
	if project.IsDraft() {
		project, err = h.queries.PublishProject(ctx, id)
	} else {
		project, err = h.queries.UnpublishProject(ctx, id)
	}
	return project.Status, err
}

func (h *Handler) togglePostStatus(ctx context.Context, id int64) (string, error) {
	post, err := h.queries.GetPostByID(ctx, id)
	if err != nil {
		return "", err
	}
	if post.Status == model.StatusDraft {
		post, err = h.queries.PublishPost(ctx, id)
	} else {
		post, err = h.queries.UnpublishPost(ctx, id)
	}
	return post.Status, err
}

func (h *Handler) toggleNewsStatus(ctx context.Context, id int64) (string, error) {
	item, err := h.queries.GetNewsItemByID(ctx, id)
	if err != nil {
		return "", err
	}
	if item.Status == model.StatusDraft {
		item, err = h.queries.PublishNewsItem(ctx, id)
	} else {
		item, err = h.queries.UnpublishNewsItem(ctx, id)
	}
	return item.Status, err
}

// MarkMessageRead handles POST /dashboard/actions/mark-message-read.
// Flips the message's read flag and returns the new value.
func (h *Handler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	id, err := formID(r, "message_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	message, err := h.queries.ToggleMessageRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Message not found")
			return
		}
		slog.Error("toggling message read flag", "message_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSONSuccess(w, map[string]any{"is_read": message.IsRead})
}

// BulkAction handles POST /dashboard/actions/bulk-action. The response
// reports the count of ids requested, not the count actually touched;
// unknown ids are silently skipped by the batched statements.
func (h *Handler) BulkAction(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	action := r.FormValue("action")
	kind := r.FormValue("content_type")
	ids := parseIDList(r.Form["item_ids"])
	if len(ids) == 0 {
		// Older table markup posted the checkboxes as "ids".
		ids = parseIDList(r.Form["ids"])
	}
	if action == "" || kind == "" || len(ids) == 0 {
		writeJSONError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	if kind != model.KindProject && kind != model.KindPost && kind != model.KindNews {
		writeJSONError(w, http.StatusBadRequest, "Invalid content type")
		return
	}
	if (action == bulkActionFeature || action == bulkActionUnfeature) && kind != model.KindProject {
		writeJSONError(w, http.StatusBadRequest, "Featuring applies to projects only")
		return
	}

	var err error
	switch action {
	case bulkActionPublish:
		// Per-record publish keeps the published_at stamping exact.
		err = h.bulkPublish(r.Context(), kind, ids)
	case bulkActionDraft:
		err = h.bulkSetStatus(r.Context(), kind, ids, model.StatusDraft)
	case bulkActionDelete:
		err = h.bulkDelete(r.Context(), kind, ids)
	case bulkActionFeature:
		err = h.queries.SetProjectsFeatured(r.Context(), ids, true)
	case bulkActionUnfeature:
		err = h.queries.SetProjectsFeatured(r.Context(), ids, false)
	default:
		writeJSONError(w, http.StatusBadRequest, "Unknown action")
		return
	}
	if err != nil {
		slog.Error("bulk action failed", "action", action, "kind", kind, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Bulk action failed")
		return
	}

	for _, id := range ids {
		h.recordAudit(r.Context(), r, kind, id, action, nil)
	}

	writeJSONSuccess(w, map[string]any{"affected_count": len(ids)})
}

func (h *Handler) bulkPublish(ctx context.Context, kind string, ids []int64) error {
	for _, id := range ids {
		var err error
		switch kind {
		case model.KindProject:
			_, err = h.queries.PublishProject(ctx, id)
		case model.KindPost:
			_, err = h.queries.PublishPost(ctx, id)
		case model.KindNews:
			_, err = h.queries.PublishNewsItem(ctx, id)
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (h *Handler) bulkSetStatus(ctx context.Context, kind string, ids []int64, status string) error {
	switch kind {
	case model.KindPost:
		return h.queries.SetPostsStatus(ctx, ids, status)
	case model.KindNews:
		return h.queries.SetNewsItemsStatus(ctx, ids, status)
	default:
		return h.queries.SetProjectsStatus(ctx, ids, status)
	}
}

func (h *Handler) bulkDelete(ctx context.Context, kind string, ids []int64) error {
	switch kind {
	case model.KindPost:
		return h.queries.DeletePosts(ctx, ids)
	case model.KindNews:
		return h.queries.DeleteNewsItems(ctx, ids)
	default:
		return h.queries.DeleteProjects(ctx, ids)
	}
}

// formID parses a required int64 form field.
func formID(r *http.Request, field string) (int64, error) {
	if err := r.ParseForm(); err != nil {
		return 0, err
	}
	ids := parseIDList([]string{r.FormValue(field)})
	if len(ids) != 1 {
		return 0, errors.New("missing " + field)
	}
	return ids[0], nil
}
