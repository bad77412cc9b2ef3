// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used for new hashes. Tests lower it.
var BcryptCost = bcrypt.DefaultCost

// dummyHash is compared against when the account does not exist so that a
// failed login costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("imperial-dummy-password"), bcrypt.DefaultCost)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
// A malformed hash is reported as an error, a mismatch is not.
func CheckPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("error comparing password hash: %w", err)
	}
}

// DummyCheckPassword burns one bcrypt comparison and always returns false.
func DummyCheckPassword(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}

// APIKeyPrefix returns the first n characters of key, or the whole key
// when it is shorter.
func APIKeyPrefix(key string, n int) string {
	r := []rune(key)
	if len(r) <= n {
		return key
	}
	return string(r[:n])
}
