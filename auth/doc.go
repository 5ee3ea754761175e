// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers, keys, and tokens.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(cohortID, salt)
	err := auth.ValidateAdminKey(cohortID, adminKey, salt)

The key is URL-safe base64 encoded without padding. The same cohort ID and
salt always produce the same key, so it is never stored.

# Participant Tokens

Participant tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateParticipantToken()

A token is issued when a participant joins and is required to replace their
preference list.

# Share Slugs

Share slugs are the public handle of a cohort:

	slug := auth.GenerateShareSlug(cohortID, salt)

Slugs are base62 encoded (alphanumeric only) and deterministic from the
cohort ID and salt.

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()
*/
package auth
