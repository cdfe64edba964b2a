// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Maimoon-github/Professional-Portfolio/internal/model"
	"github.com/Maimoon-github/Professional-Portfolio/internal/render"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
	"github.com/Maimoon-github/Professional-Portfolio/internal/util"
)

// dateInputLayout matches the value format of HTML date inputs.
const dateInputLayout = "2006-01-02"

// ResumeData holds data for the combined resume management template.
type ResumeData struct {
	Experiences []model.Experience
	Education   []model.Education
	Skills      []model.Skill
}

// ResumePage handles GET /dashboard/experience. Experience, education,
// and skills are managed from a single page.
func (h *Handler) ResumePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	experiences, err := h.queries.ListExperiences(ctx)
	if err != nil {
		slog.Error("listing experiences", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	education, err := h.queries.ListEducation(ctx)
	if err != nil {
		slog.Error("listing education", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	skills, err := h.queries.ListSkills(ctx)
	if err != nil {
		slog.Error("listing skills", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "dashboard/resume", render.TemplateData{
		Title: "Experience",
		Data: ResumeData{
			Experiences: experiences,
			Education:   education,
			Skills:      skills,
		},
	})
}

func experienceParamsFromForm(r *http.Request) (store.CreateExperienceParams, map[string]string) {
	errs := make(map[string]string)

	role := strings.TrimSpace(r.FormValue("role"))
	company := strings.TrimSpace(r.FormValue("company"))
	if role == "" {
		errs["role"] = "Role is required"
	}
	if company == "" {
		errs["company"] = "Company is required"
	}

	startDate, err := time.Parse(dateInputLayout, r.FormValue("start_date"))
	if err != nil {
		errs["start_date"] = "Start date is required"
	}

	isCurrent := r.FormValue("is_current") == "on"

	var endDate sql.NullTime
	if raw := r.FormValue("end_date"); raw != "" && !isCurrent {
		t, err := time.Parse(dateInputLayout, raw)
		if err != nil {
			errs["end_date"] = "Invalid end date"
		} else {
			endDate = sql.NullTime{Time: t, Valid: true}
		}
	}

	position, _ := strconv.ParseInt(r.FormValue("order"), 10, 64)

	return store.CreateExperienceParams{
		Role:        role,
		Company:     company,
		Location:    strings.TrimSpace(r.FormValue("location")),
		StartDate:   startDate,
		EndDate:     endDate,
		IsCurrent:   isCurrent,
		Description: r.FormValue("description"),
		Position:    position,
	}, errs
}

// CreateExperience handles POST /dashboard/experience.
func (h *Handler) CreateExperience(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	params, errs := experienceParamsFromForm(r)
	if len(errs) > 0 {
		h.renderer.SetFlash(r, firstError(errs), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	exp, err := h.queries.CreateExperience(r.Context(), params)
	if err != nil {
		slog.Error("creating experience", "error", err)
		h.renderer.SetFlash(r, "Error creating experience", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindExperience, exp.ID, model.AuditActionCreate, exp)
	h.renderer.SetFlash(r, "Experience added", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// UpdateExperience handles POST /dashboard/experience/{id}.
func (h *Handler) UpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid experience ID", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	params, errs := experienceParamsFromForm(r)
	if len(errs) > 0 {
		h.renderer.SetFlash(r, firstError(errs), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
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
		slog.Error("updating experience", "experience_id", id, "error", err)
		h.renderer.SetFlash(r, "Error updating experience", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindExperience, id, model.AuditActionUpdate, exp)
	h.renderer.SetFlash(r, "Experience updated", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// DeleteExperience handles POST /dashboard/experience/{id}/delete.
func (h *Handler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	h.deleteResumeEntry(w, r, model.KindExperience, "Experience", h.queries.DeleteExperience)
}

func educationParamsFromForm(r *http.Request) (store.CreateEducationParams, map[string]string) {
	errs := make(map[string]string)

	institution := strings.TrimSpace(r.FormValue("institution"))
	degree := strings.TrimSpace(r.FormValue("degree"))
	if institution == "" {
		errs["institution"] = "Institution is required"
	}
	if degree == "" {
		errs["degree"] = "Degree is required"
	}

	startYear, err := strconv.ParseInt(r.FormValue("start_year"), 10, 64)
	if err != nil || startYear < 1900 {
		errs["start_year"] = "Start year is required"
	}

	endYear := util.ParseNullInt64Positive(r.FormValue("end_year"))
	if endYear.Valid && endYear.Int64 < startYear {
		errs["end_year"] = "End year precedes start year"
	}

	position, _ := strconv.ParseInt(r.FormValue("order"), 10, 64)

	return store.CreateEducationParams{
		Institution:  institution,
		Degree:       degree,
		FieldOfStudy: strings.TrimSpace(r.FormValue("field_of_study")),
		StartYear:    startYear,
		EndYear:      endYear,
		Description:  r.FormValue("description"),
		Position:     position,
	}, errs
}

// CreateEducation handles POST /dashboard/education.
func (h *Handler) CreateEducation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	params, errs := educationParamsFromForm(r)
	if len(errs) > 0 {
		h.renderer.SetFlash(r, firstError(errs), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	edu, err := h.queries.CreateEducation(r.Context(), params)
	if err != nil {
		slog.Error("creating education entry", "error", err)
		h.renderer.SetFlash(r, "Error creating education entry", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindEducation, edu.ID, model.AuditActionCreate, edu)
	h.renderer.SetFlash(r, "Education added", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// UpdateEducation handles POST /dashboard/education/{id}.
func (h *Handler) UpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid education ID", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	params, errs := educationParamsFromForm(r)
	if len(errs) > 0 {
		h.renderer.SetFlash(r, firstError(errs), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	edu, err := h.queries.UpdateEducation(r.Context(), store.UpdateEducationParams{
		ID:           id,
		Institution:  params.Institution,
		Degree:       params.Degree,
		FieldOfStudy: params.FieldOfStudy,
		StartYear:    params.StartYear,
		EndYear:      params.EndYear,
		Description:  params.Description,
		Position:     params.Position,
	})
	if err != nil {
		slog.Error("updating education entry", "education_id", id, "error", err)
		h.renderer.SetFlash(r, "Error updating education entry", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindEducation, id, model.AuditActionUpdate, edu)
	h.renderer.SetFlash(r, "Education updated", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// DeleteEducation handles POST /dashboard/education/{id}/delete.
func (h *Handler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	h.deleteResumeEntry(w, r, model.KindEducation, "Education entry", h.queries.DeleteEducation)
}

func skillParamsFromForm(r *http.Request) (store.CreateSkillParams, map[string]string) {
	errs := make(map[string]string)

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		errs["name"] = "Name is required"
	}

	proficiency, err := strconv.ParseInt(r.FormValue("proficiency"), 10, 64)
	if err != nil || proficiency < 0 || proficiency > 100 {
		errs["proficiency"] = "Proficiency must be between 0 and 100"
	}

	position, _ := strconv.ParseInt(r.FormValue("order"), 10, 64)

	return store.CreateSkillParams{
		Name:        name,
		Proficiency: proficiency,
		Category:    strings.TrimSpace(r.FormValue("category")),
		Position:    position,
	}, errs
}

// CreateSkill handles POST /dashboard/skills.
func (h *Handler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	params, errs := skillParamsFromForm(r)
	if len(errs) > 0 {
		h.renderer.SetFlash(r, firstError(errs), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	skill, err := h.queries.CreateSkill(r.Context(), params)
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderer.SetFlash(r, "A skill with that name and category already exists", "error")
		} else {
			slog.Error("creating skill", "error", err)
			h.renderer.SetFlash(r, "Error creating skill", "error")
		}
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindSkill, skill.ID, model.AuditActionCreate, skill)
	h.renderer.SetFlash(r, "Skill added", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// UpdateSkill handles POST /dashboard/skills/{id}.
func (h *Handler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid skill ID", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.SetFlash(r, "Invalid form data", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	params, errs := skillParamsFromForm(r)
	if len(errs) > 0 {
		h.renderer.SetFlash(r, firstError(errs), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	skill, err := h.queries.UpdateSkill(r.Context(), store.UpdateSkillParams{
		ID:          id,
		Name:        params.Name,
		Proficiency: params.Proficiency,
		Category:    params.Category,
		Position:    params.Position,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			h.renderer.SetFlash(r, "A skill with that name and category already exists", "error")
		} else {
			slog.Error("updating skill", "skill_id", id, "error", err)
			h.renderer.SetFlash(r, "Error updating skill", "error")
		}
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, model.KindSkill, id, model.AuditActionUpdate, skill)
	h.renderer.SetFlash(r, "Skill updated", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// DeleteSkill handles POST /dashboard/skills/{id}/delete.
func (h *Handler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	h.deleteResumeEntry(w, r, model.KindSkill, "Skill", h.queries.DeleteSkill)
}

// deleteResumeEntry shares the delete flow of the resume sub-entities.
func (h *Handler) deleteResumeEntry(w http.ResponseWriter, r *http.Request, kind, label string, del func(context.Context, int64) error) {
	id, err := ParseIDParam(r)
	if err != nil {
		h.renderer.SetFlash(r, "Invalid "+strings.ToLower(label)+" ID", "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	if err := del(r.Context(), id); err != nil {
		slog.Error("deleting "+kind, "id", id, "error", err)
		h.renderer.SetFlash(r, "Error deleting "+strings.ToLower(label), "error")
		http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
		return
	}

	h.recordAudit(r.Context(), r, kind, id, model.AuditActionDelete, nil)
	h.renderer.SetFlash(r, label+" deleted", "success")
	http.Redirect(w, r, "/dashboard/experience", http.StatusSeeOther)
}

// firstError picks one message from a validation error map for flash
// display.
func firstError(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return "Invalid form data"
}
