// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth hashes and verifies staff passwords with argon2id.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Current argon2id cost parameters (OWASP second recommended set:
// m=19456, t=2, p=1). Memory stays under 20 MB so the site runs fine
// on small VMs.
const (
	hashTime    = 2
	hashMemory  = 19 * 1024
	hashThreads = 1
	hashKeyLen  = 32
	hashSaltLen = 16
)

// DummyHash is a syntactically valid argon2id hash that matches no
// password. Verifying against it keeps the unknown-user login path
// from returning faster than the wrong-password path.
const DummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

var errMalformedHash = errors.New("malformed password hash")

// hashParams are the cost parameters decoded from an encoded hash.
type hashParams struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	digest  []byte
}

func decodeHash(encoded string) (hashParams, error) {
	var p hashParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, errMalformedHash
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, errMalformedHash
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, errMalformedHash
	}
	if p.digest, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return p, errMalformedHash
	}
	return p, nil
}

// HashPassword returns the argon2id encoding of password with a fresh
// random salt.
func HashPassword(password string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	digest := argon2.IDKey([]byte(password), salt, hashTime, hashMemory, hashThreads, hashKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, hashMemory, hashTime, hashThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest)), nil
}

// CheckPassword reports whether password matches the encoded hash,
// using the parameters stored in the hash and a constant-time compare.
func CheckPassword(password, encoded string) (bool, error) {
	p, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	digest := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.threads, uint32(len(p.digest)))
	return subtle.ConstantTimeCompare(digest, p.digest) == 1, nil
}

// NeedsRehash reports whether the hash was created with parameters
// other than the current ones and should be regenerated on next login.
func NeedsRehash(encoded string) bool {
	p, err := decodeHash(encoded)
	if err != nil {
		return true
	}
	return p.memory != hashMemory || p.time != hashTime || p.threads != hashThreads
}
