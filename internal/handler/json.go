// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
)

// actionEnvelope is the response shape of the dashboard AJAX endpoints:
// a success flag plus either an error string or action-specific fields.
type actionEnvelope map[string]any

func writeEnvelope(w http.ResponseWriter, statusCode int, env actionEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// writeJSONError writes the failure envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, statusCode, actionEnvelope{"success": false, "error": message})
}

// writeJSONSuccess writes the success envelope with extra fields merged in.
func writeJSONSuccess(w http.ResponseWriter, fields map[string]any) {
	env := actionEnvelope{"success": true}
	for k, v := range fields {
		env[k] = v
	}
	writeEnvelope(w, http.StatusOK, env)
}
