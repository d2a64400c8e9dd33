// Copyright (c) 2025 SkillCheck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential hashing and token generation utilities.

# Passwords

Passwords are stored only as bcrypt hashes (cost 10):

	hash, err := auth.HashPassword(plaintext)
	ok := auth.CheckPassword(hash, plaintext)

CheckPassword never reveals why a comparison failed; login handlers return
the same "Invalid credentials" message for unknown emails and wrong
passwords.

# ID Generation

Random hex IDs for session tokens:

	id, err := auth.GenerateID(16)  // 32 hex characters

Session tokens are opaque: they carry no user information and are only
meaningful as a lookup key into the session table.

# Verification Codes

Six-digit numeric email verification codes:

	code, err := auth.GenerateVerifyCode()  // "100000".."999999"

Codes are generated with crypto/rand and expire one hour after issue.
*/
package auth
