// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func TestCreateExperienceAPI(t *testing.T) {
	h, _ := testAPIHandler(t)

	t.Run("valid experience", func(t *testing.T) {
		body := `{"role":"Engineer","company":"Initech","start_date":"2020-03-01","end_date":"2022-06-30","description":"TPS reports"}`
		rec := postJSON(h.CreateExperience, "/api/experience", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Data ExperienceResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Data.StartDate != "2020-03-01" {
			t.Errorf("start_date = %q, want 2020-03-01", resp.Data.StartDate)
		}
		if resp.Data.EndDate == nil || *resp.Data.EndDate != "2022-06-30" {
			t.Errorf("end_date = %v, want 2022-06-30", resp.Data.EndDate)
		}
	})

	t.Run("current role has no end date", func(t *testing.T) {
		body := `{"role":"Lead","company":"Initech","start_date":"2022-07-01","is_current":true}`
		rec := postJSON(h.CreateExperience, "/api/experience", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Data ExperienceResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.Data.EndDate != nil {
			t.Errorf("end_date = %v, want nil", resp.Data.EndDate)
		}
		if !resp.Data.IsCurrent {
			t.Error("is_current should be true")
		}
	})

	t.Run("malformed start date", func(t *testing.T) {
		body := `{"role":"Engineer","company":"Initech","start_date":"March 2020"}`
		rec := postJSON(h.CreateExperience, "/api/experience", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		detail := decodeError(t, rec)
		if detail.Details["start_date"] != "Must be a date in YYYY-MM-DD format" {
			t.Errorf("details = %v, want the date format error", detail.Details)
		}
	})

	t.Run("malformed end date", func(t *testing.T) {
		body := `{"role":"Engineer","company":"Initech","start_date":"2020-03-01","end_date":"soon"}`
		rec := postJSON(h.CreateExperience, "/api/experience", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		detail := decodeError(t, rec)
		if _, ok := detail.Details["end_date"]; !ok {
			t.Errorf("details = %v, want an entry for end_date", detail.Details)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := postJSON(h.CreateExperience, "/api/experience", `{"location":"Remote"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		detail := decodeError(t, rec)
		for _, field := range []string{"role", "company", "start_date"} {
			if _, ok := detail.Details[field]; !ok {
				t.Errorf("details = %v, want an entry for %s", detail.Details, field)
			}
		}
	})
}

func TestListExperienceAPI(t *testing.T) {
	h, _ := testAPIHandler(t)

	for _, body := range []string{
		`{"role":"Junior","company":"A","start_date":"2015-01-01","order":2}`,
		`{"role":"Senior","company":"B","start_date":"2018-01-01","order":1}`,
	} {
		if rec := postJSON(h.CreateExperience, "/api/experience", body); rec.Code != http.StatusCreated {
			t.Fatalf("seeding experience: status %d: %s", rec.Code, rec.Body.String())
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/experience", nil)
	rec := httptest.NewRecorder()
	h.ListExperience(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Data []ExperienceResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len = %d, want 2", len(resp.Data))
	}
	if resp.Data[0].Role != "Senior" {
		t.Errorf("first role = %q, want most recent start date first", resp.Data[0].Role)
	}

	t.Run("ordering override", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/experience?ordering=-start_date", nil)
		rec := httptest.NewRecorder()
		h.ListExperience(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var resp struct {
			Data []ExperienceResponse `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(resp.Data) != 2 || resp.Data[0].StartDate != "2018-01-01" {
			t.Errorf("data = %+v, want newest start date first", resp.Data)
		}
	})

	t.Run("unknown ordering field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/experience?ordering=salary", nil)
		rec := httptest.NewRecorder()
		h.ListExperience(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestDeleteExperienceAPI(t *testing.T) {
	h, _ := testAPIHandler(t)

	rec := postJSON(h.CreateExperience, "/api/experience", `{"role":"Temp","company":"C","start_date":"2021-01-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seeding experience: status %d", rec.Code)
	}
	var created struct {
		Data ExperienceResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	del := func(id int64) *httptest.ResponseRecorder {
		idStr := strconv.FormatInt(id, 10)
		req := asStaff(httptest.NewRequest(http.MethodDelete, "/api/experience/"+idStr, nil))
		req = withURLParams(req, map[string]string{"id": idStr})
		w := httptest.NewRecorder()
		h.DeleteExperience(w, req)
		return w
	}

	if w := del(created.Data.ID); w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if w := del(created.Data.ID); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestSkillsAPI(t *testing.T) {
	h, _ := testAPIHandler(t)

	t.Run("create and list", func(t *testing.T) {
		rec := postJSON(h.CreateSkill, "/api/skills", `{"name":"Go","proficiency":90,"category":"Languages"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}

		listReq := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
		listRec := httptest.NewRecorder()
		h.ListSkills(listRec, listReq)

		var resp struct {
			Data []SkillResponse `json:"data"`
		}
		if err := json.NewDecoder(listRec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if len(resp.Data) != 1 || resp.Data[0].Name != "Go" || resp.Data[0].Proficiency != 90 {
			t.Errorf("data = %+v, want the created skill", resp.Data)
		}
	})

	t.Run("duplicate name and category", func(t *testing.T) {
		rec := postJSON(h.CreateSkill, "/api/skills", `{"name":"Go","proficiency":50,"category":"Languages"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		detail := decodeError(t, rec)
		if _, ok := detail.Details["name"]; !ok {
			t.Errorf("details = %v, want an entry for name", detail.Details)
		}
	})

	t.Run("same name in another category", func(t *testing.T) {
		rec := postJSON(h.CreateSkill, "/api/skills", `{"name":"Go","proficiency":70,"category":"Tooling"}`)
		if rec.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("proficiency out of range", func(t *testing.T) {
		rec := postJSON(h.CreateSkill, "/api/skills", `{"name":"Rust","proficiency":150}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		detail := decodeError(t, rec)
		if _, ok := detail.Details["proficiency"]; !ok {
			t.Errorf("details = %v, want an entry for proficiency", detail.Details)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		rec := postJSON(h.CreateSkill, "/api/skills", `{"proficiency":10}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422", rec.Code)
		}
	})
}
