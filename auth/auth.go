// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrMissingToken    = errors.New("participant token required")
)

// NewID returns a random UUID string for cohorts, resources, and runs
func NewID() string {
	return uuid.NewString()
}

// GenerateAdminKey creates an HMAC-based admin key for a cohort
// This is deterministic and verifiable
func GenerateAdminKey(cohortID, salt string) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(mac(cohortID, salt)), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the cohort
func ValidateAdminKey(cohortID, adminKey, salt string) error {
	expected := GenerateAdminKey(cohortID, salt)
	if adminKey == "" || !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateParticipantToken creates a random secure token for a participant.
// It authorizes preference updates, so it is never derived from the id.
func GenerateParticipantToken() (string, error) {
	b := make([]byte, 24) // 192 bits
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate participant token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateShareSlug creates a short, deterministic URL slug for a cohort
func GenerateShareSlug(cohortID, salt string) string {
	// A different context string keeps slugs unrelated to admin keys under the same salt
	return base62Encode(mac("slug:"+cohortID, salt)[:8])
}

func mac(message, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(message))
	return h.Sum(nil)
}

// base62Encode converts up to 8 bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
