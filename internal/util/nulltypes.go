// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions.
package util

import (
	"database/sql"
	"strconv"
)

// NullInt64FromPtr converts a pointer to int64 into sql.NullInt64.
// Returns a valid NullInt64 if the pointer is non-nil, otherwise returns an invalid one.
func NullInt64FromPtr(ptr *int64) sql.NullInt64 {
	if ptr != nil {
		return sql.NullInt64{Int64: *ptr, Valid: true}
	}
	return sql.NullInt64{}
}

// ParseNullInt64Positive parses a string into sql.NullInt64, requiring positive values.
// Returns an invalid NullInt64 if the string is empty, cannot be parsed, or value is <= 0.
func ParseNullInt64Positive(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	if val, err := strconv.ParseInt(s, 10, 64); err == nil && val > 0 {
		return sql.NullInt64{Int64: val, Valid: true}
	}
	return sql.NullInt64{}
}
