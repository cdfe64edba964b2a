// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// apiDateLayout is the wire format for experience dates.
const apiDateLayout = "2006-01-02"

// ExperienceResponse represents an experience entry in API responses.
type ExperienceResponse struct {
	ID          int64     `json:"id"`
	Role        string    `json:"role"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	IsCurrent   bool      `json:"is_current"`
	Description string    `json:"description,omitempty"`
	Order       int64     `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func experienceResponse(e model.Experience) ExperienceResponse {
	resp := ExperienceResponse{
		ID:          e.ID,
		Role:        e.Role,
		Company:     e.Company,
		Location:    e.Location,
		StartDate:   e.StartDate.Format(apiDateLayout),
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
		Order:       e.Position,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.EndDate.Valid {
		s := e.EndDate.Time.Format(apiDateLayout)
		resp.EndDate = &s
	}
	return resp
}

// ExperienceRequest is the request body for creating or updating an
// experience entry. Dates use YYYY-MM-DD.
type ExperienceRequest struct {
	Role        string  `json:"role" validate:"required,max=200"`
	Company     string  `json:"company" validate:"required,max=200"`
	Location    string  `json:"location" validate:"max=200"`
	StartDate   string  `json:"start_date" validate:"required"`
	EndDate     *string `json:"end_date"`
	IsCurrent   bool    `json:"is_current"`
	Description string  `json:"description"`
	Order       int64   `json:"order"`
}

func (req ExperienceRequest) storeParams(w http.ResponseWriter) (store.CreateExperienceParams, bool) {
	startDate, err := time.Parse(apiDateLayout, req.StartDate)
	if err != nil {
		WriteValidationError(w, map[string]string{"start_date": "Must be a date in YYYY-MM-DD format"})
		return store.CreateExperienceParams{}, false
	}

	var endDate sql.NullTime
	if req.EndDate != nil && *req.EndDate != "" {
		t, err := time.Parse(apiDateLayout, *req.EndDate)
		if err != nil {
			WriteValidationError(w, map[string]string{"end_date": "Must be a date in YYYY-MM-DD format"})
			return store.CreateExperienceParams{}, false
		}
		endDate = sql.NullTime{Time: t, Valid: true}
	}

	return store.CreateExperienceParams{
		Role:        req.Role,
		Company:     req.Company,
		Location:    req.Location,
		StartDate:   startDate,
		EndDate:     endDate,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
		Position:    req.Order,
	}, true
}

// Orderable fields for the experience collection.
var experienceOrderFields = map[string]string{
	"start_date": "start_date",
	"end_date":   "end_date",
	"company":    "company",
	"role":       "role",
	"order":      "position",
	"created_at": "created_at",
}

// ListExperience handles GET /api/experience. The collection is small
// and returned unpaginated.
func (h *Handler) ListExperience(w http.ResponseWriter, r *http.Request) {
	orderBy, err := parseOrdering(r.URL.Query().Get("ordering"), experienceOrderFields)
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	experiences, err := h.queries.ListExperiencesOrdered(r.Context(), orderBy)
	if err != nil {
		WriteInternalError(w, "Failed to list experience")
		return
	}

	responses := make([]ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		responses = append(responses, experienceResponse(e))
	}
	WriteSuccess(w, responses, nil)
}

// GetExperience handles GET /api/experience/{id}.
func (h *Handler) GetExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "experience")
	if !ok {
		return
	}

	exp, err := h.queries.GetExperienceByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Experience not found")
		return
	}
	WriteSuccess(w, experienceResponse(exp), nil)
}

// CreateExperience handles POST /api/experience.
func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	var req ExperienceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	params, ok := req.storeParams(w)
	if !ok {
		return
	}

	exp, err := h.queries.CreateExperience(r.Context(), params)
	if err != nil {
		slog.Error("creating experience via API", "error", err)
		WriteInternalError(w, "Failed to create experience")
		return
	}

	h.recordAudit(r.Context(), r, model.KindExperience, exp.ID, model.AuditActionCreate, exp)
	WriteCreated(w, experienceResponse(exp))
}

// UpdateExperience handles PUT /api/experience/{id}.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "experience")
	if !ok {
		return
	}

	if _, err := h.queries.GetExperienceByID(r.Context(), id); err != nil {
		WriteNotFound(w, "Experience not found")
		return
	}

	var req ExperienceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	params, ok := req.storeParams(w)
	if !ok {
		return
	}

	exp, err := h.queries.UpdateExperience(r.Context(), store.UpdateExperienceParams{
		ID:          id,
		Role:        params.Role,
		Company:     params.Company,
		Location:    params.Location,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		IsCurrent:   params.IsCurrent,
		Description: params.Description,
		Position:    params.Position,
	})
	if err != nil {
		slog.Error("updating experience via API", "experience_id", id, "error", err)
		WriteInternalError(w, "Failed to update experience")
		return
	}

	h.recordAudit(r.Context(), r, model.KindExperience, id, model.AuditActionUpdate, exp)
	WriteSuccess(w, experienceResponse(exp), nil)
}

// DeleteExperience handles DELETE /api/experience/{id}.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "experience")
	if !ok {
		return
	}

	if err := h.queries.DeleteExperience(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Experience not found")
			return
		}
		slog.Error("deleting experience via API", "experience_id", id, "error", err)
		WriteInternalError(w, "Failed to delete experience")
		return
	}

	h.recordAudit(r.Context(), r, model.KindExperience, id, model.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}

// SkillResponse represents a skill in API responses.
type SkillResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Proficiency int64     `json:"proficiency"`
	Category    string    `json:"category,omitempty"`
	Order       int64     `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func skillResponse(s model.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Proficiency: s.Proficiency,
		Category:    s.Category,
		Order:       s.Position,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SkillRequest is the request body for creating or updating a skill.
type SkillRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Proficiency int64  `json:"proficiency" validate:"min=0,max=100"`
	Category    string `json:"category" validate:"max=100"`
	Order       int64  `json:"order"`
}

// Orderable fields for the skills collection.
var skillOrderFields = map[string]string{
	"name":        "name",
	"proficiency": "proficiency",
	"category":    "category",
	"order":       "position",
	"created_at":  "created_at",
}

// ListSkills handles GET /api/skills.
func (h *Handler) ListSkills(w http.ResponseWriter, r *http.Request) {
	orderBy, err := parseOrdering(r.URL.Query().Get("ordering"), skillOrderFields)
	if err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	skills, err := h.queries.ListSkillsOrdered(r.Context(), orderBy)
	if err != nil {
		WriteInternalError(w, "Failed to list skills")
		return
	}

	responses := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		responses = append(responses, skillResponse(s))
	}
	WriteSuccess(w, responses, nil)
}

// GetSkill handles GET /api/skills/{id}.
func (h *Handler) GetSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "skill")
	if !ok {
		return
	}

	skill, err := h.queries.GetSkillByID(r.Context(), id)
	if err != nil {
		WriteNotFound(w, "Skill not found")
		return
	}
	WriteSuccess(w, skillResponse(skill), nil)
}

// CreateSkill handles POST /api/skills.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	skill, err := h.queries.CreateSkill(r.Context(), store.CreateSkillParams{
		Name:        req.Name,
		Proficiency: req.Proficiency,
		Category:    req.Category,
		Position:    req.Order,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"name": "A skill with that name and category already exists"})
			return
		}
		slog.Error("creating skill via API", "error", err)
		WriteInternalError(w, "Failed to create skill")
		return
	}

	h.recordAudit(r.Context(), r, model.KindSkill, skill.ID, model.AuditActionCreate, skill)
	WriteCreated(w, skillResponse(skill))
}

// UpdateSkill handles PUT /api/skills/{id}.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "skill")
	if !ok {
		return
	}

	if _, err := h.queries.GetSkillByID(r.Context(), id); err != nil {
		WriteNotFound(w, "Skill not found")
		return
	}

	var req SkillRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	skill, err := h.queries.UpdateSkill(r.Context(), store.UpdateSkillParams{
		ID:          id,
		Name:        req.Name,
		Proficiency: req.Proficiency,
		Category:    req.Category,
		Position:    req.Order,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			WriteValidationError(w, map[string]string{"name": "A skill with that name and category already exists"})
			return
		}
		slog.Error("updating skill via API", "skill_id", id, "error", err)
		WriteInternalError(w, "Failed to update skill")
		return
	}

	h.recordAudit(r.Context(), r, model.KindSkill, id, model.AuditActionUpdate, skill)
	WriteSuccess(w, skillResponse(skill), nil)
}

// DeleteSkill handles DELETE /api/skills/{id}.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "skill")
	if !ok {
		return
	}

	if err := h.queries.DeleteSkill(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Skill not found")
			return
		}
		slog.Error("deleting skill via API", "skill_id", id, "error", err)
		WriteInternalError(w, "Failed to delete skill")
		return
	}

	h.recordAudit(r.Context(), r, model.KindSkill, id, model.AuditActionDelete, nil)
	w.WriteHeader(http.StatusNoContent)
}
