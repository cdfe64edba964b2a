// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers. Reads are open; writes
// require a staff session.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Maimoon-github/Professional-Portfolio/internal/handler"
	"github.com/Maimoon-github/Professional-Portfolio/internal/store"
)

// maxBodySize caps API request bodies at 1 MB.
const maxBodySize = 1 << 20

// defaultPerPage and maxPerPage bound API collection page sizes.
const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries  *store.Queries
	validate *validator.Validate
}

// NewHandler creates an API handler.
func NewHandler(queries *store.Queries) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report validation errors under the JSON field names clients sent,
	// not the Go struct field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		queries:  queries,
		validate: validate,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 response with per-field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// decodeAndValidate reads a JSON request body into dst and runs the
// struct validators. It writes the error response itself and reports
// whether the caller may proceed.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			WriteValidationError(w, map[string]string{
				typeErr.Field: fmt.Sprintf("must be of type %s", typeErr.Type),
			})
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is required", nil)
		default:
			WriteBadRequest(w, "Invalid JSON body", nil)
		}
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			WriteInternalError(w, "Validation failed")
			return false
		}
		fieldErrors := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fieldErrors[fe.Field()] = validationMessage(fe)
			}
		}
		WriteValidationError(w, fieldErrors)
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return "Must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}

// parsePerPage reads ?per_page= bounded to [1, maxPerPage].
func parsePerPage(r *http.Request) int {
	raw := r.URL.Query().Get("per_page")
	if raw == "" {
		return defaultPerPage
	}
	var perPage int
	if _, err := fmt.Sscanf(raw, "%d", &perPage); err != nil || perPage < 1 {
		return defaultPerPage
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}

// parseOrdering maps an ?ordering= value to SQL ORDER BY clauses using
// a per-entity field whitelist. A leading hyphen flips the direction.
// Unknown fields report an error so clients notice typos.
func parseOrdering(raw string, allowed map[string]string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var clauses []string
	for _, part := range strings.Split(raw, ",") {
		field := strings.TrimSpace(part)
		if field == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		column, ok := allowed[field]
		if !ok {
			return nil, fmt.Errorf("cannot order by %q", field)
		}
		clauses = append(clauses, column+" "+dir)
	}
	return clauses, nil
}

// collectionMeta computes pagination metadata for a collection
// response, clamping the page the same way the dashboard does.
func collectionMeta(page int, total int64, perPage int) (*Meta, int) {
	page, pages := store.ClampPage(page, total, perPage)
	return &Meta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	}, page
}

// requireID parses the {id} URL parameter, writing the error response
// on failure.
func requireID(w http.ResponseWriter, r *http.Request, entityName string) (int64, bool) {
	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return 0, false
	}
	return id, true
}
