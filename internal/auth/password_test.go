// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id encoding", hash)
	}

	ok, err := CheckPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = CheckPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same input should differ")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-hash", "$argon2id$v=19$broken"} {
		if ok, _ := CheckPassword("x", hash); ok {
			t.Errorf("malformed hash %q accepted", hash)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("x")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("fresh hash should not need rehash")
	}
	if !NeedsRehash("$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA") {
		t.Error("hash with weaker parameters should need rehash")
	}
	if !NeedsRehash("garbage") {
		t.Error("malformed hash should need rehash")
	}
}
