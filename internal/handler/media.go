// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// maxUploadSize caps media uploads at 32 MB.
const maxUploadSize = 32 << 20

// MediaListData holds data for the media library template.
type MediaListData struct {
	Assets     []model.MediaAsset
	Filter     store.MediaFilter
	Pagination Pagination
}

// MediaLibrary handles GET /dashboard/media.
func (h *Handler) MediaLibrary(w http.ResponseWriter, r *http.Request) {
	f := store.MediaFilter{
		FileType: r.URL.Query().Get("type"),
		Search:   strings.TrimSpace(r.URL.Query().Get("q")),
		Page:     ParsePageParam(r),
		PerPage:  store.PageSizeMedia,
	}

	total, err := h.queries.CountMediaAssets(r.Context(), f)
	if err != nil {
		slog.Error("counting media assets", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pagination := buildPagination(f.Page, total, f.PerPage)
	f.Page = pagination.Page

	assets, err := h.queries.ListMediaAssets(r.Context(), f)
	if err != nil {
		slog.Error("listing media assets", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "dashboard/media", render.TemplateData{
		Title: "Media Library",
		Data: MediaListData{
			Assets:     assets,
			Filter:     f,
			Pagination: pagination,
		},
	})
}

// UploadMedia handles POST /dashboard/media. Images get normalized and
// thumbnailed; anything else is stored verbatim as a document.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.renderer.SetFlash(r, "Upload too large or malformed", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderer.SetFlash(r, "No file selected", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}
	defer func() { _ = file.Close() }()

	sniff := make([]byte, 512)
	n, err := file.Read(sniff)
	if err != nil && n == 0 {
		h.renderer.SetFlash(r, "Error reading upload", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}
	if _, err := file.Seek(0, 0); err != nil {
		slog.Error("rewinding upload", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	mimeType := h.images.DetectMimeType(sniff[:n])
	filename := filepath.Base(header.Filename)
	id := uuid.NewString()

	var fileType, storedPath string
	if h.images.IsImage(mimeType) {
		result, err := h.images.ProcessUpload(file, id, filename)
		if err != nil {
			slog.Error("processing image upload", "filename", filename, "error", err)
			h.renderer.SetFlash(r, "Could not process image", "error")
			http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
			return
		}
		if _, err := h.images.CreateAllVariants(result.FilePath, id, filename); err != nil {
			slog.Error("creating image variants", "filename", filename, "error", err)
		}
		fileType = model.MediaTypeImage
		storedPath = "originals/" + id + "/" + filename
	} else {
		if _, err := h.images.SaveDocument(file, id, filename); err != nil {
			slog.Error("saving document upload", "filename", filename, "error", err)
			h.renderer.SetFlash(r, "Could not store file", "error")
			http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
			return
		}
		fileType = model.MediaTypeDocument
		storedPath = "documents/" + id + "/" + filename
	}

	asset, err := h.queries.CreateMediaAsset(r.Context(), store.CreateMediaAssetParams{
		FilePath: storedPath,
		FileType: fileType,
		Title:    strings.TrimSpace(r.FormValue("title")),
		AltText:  strings.TrimSpace(r.FormValue("alt_text")),
	})
	if err != nil {
		slog.Error("creating media asset", "error", err)
		h.renderer.SetFlash(r, "Error saving media asset", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindMedia, asset.ID, model.AuditActionCreate, asset)
	h.renderer.SetFlash(r, "File uploaded", "success")
	http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
}

// UpdateMedia handles POST /dashboard/media/{id}. Only the metadata
// fields change; the file itself is immutable.
func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid media ID", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	asset, err := h.queries.UpdateMediaAsset(r.Context(), store.UpdateMediaAssetParams{
		ID:          id,
		Title:       strings.TrimSpace(r.FormValue("title")),
		AltText:     strings.TrimSpace(r.FormValue("alt_text")),
		Description: strings.TrimSpace(r.FormValue("description")),
	})
	if err != nil {
		h.renderer.SetFlash(r, "Media asset not found", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindMedia, id, model.AuditActionUpdate, asset)
	h.renderer.SetFlash(r, "Media asset updated", "success")
	http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
}

// DeleteMedia handles POST /dashboard/media/{id}/delete. The stored
// files go with the record.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid media ID", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	asset, err := h.queries.GetMediaAssetByID(r.Context(), id)
	if err != nil {
		h.renderer.SetFlash(r, "Media asset not found", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	if err := h.queries.DeleteMediaAsset(r.Context(), id); err != nil {
		slog.Error("deleting media asset", "media_id", id, "error", err)
		h.renderer.SetFlash(r, "Error deleting media asset", "error")
		http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
		return
	}

	if uid := uploadUUID(asset.FilePath); uid != "" {
		if err := h.images.DeleteFiles(uid); err != nil {
			slog.Error("deleting media files", "media_id", id, "error", err)
		}
	}

	h.recordAudit(r.Context(), r, model.KindMedia, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, "Media asset deleted", "success")
	http.Redirect(w, r, "/dashboard/media", http.StatusSeeOther)
}

// uploadUUID extracts the per-upload directory name from a stored
// path like originals/<uuid>/<filename>.
func uploadUUID(filePath string) string {
	parts := strings.Split(filepath.ToSlash(filePath), "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[1]
}
