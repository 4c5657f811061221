// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/cratedig/internal/platform/sec"
)

/*
TestHashPassword_Roundtrip verifies that a hashed password validates against
the original plain text and rejects anything else.
*/
func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := sec.HashPassword("vinyl4life")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// The plain text must never be stored verbatim.
	assert.NotEqual(t, "vinyl4life", hash)

	assert.True(t, sec.CheckPasswordHash("vinyl4life", hash))
	assert.False(t, sec.CheckPasswordHash("vinyl4lifE", hash))
	assert.False(t, sec.CheckPasswordHash("", hash))
}

/*
TestHashPassword_Salted verifies that hashing is non-deterministic: two
hashes of the same input differ, yet both validate.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("vinyl4life")
	require.NoError(t, err)

	second, err := sec.HashPassword("vinyl4life")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, sec.CheckPasswordHash("vinyl4life", first))
	assert.True(t, sec.CheckPasswordHash("vinyl4life", second))
}

/*
TestCheckPasswordHash_MalformedHash verifies that garbage stored hashes fail
closed instead of panicking.
*/
func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	assert.False(t, sec.CheckPasswordHash("vinyl4life", "not-a-bcrypt-hash"))
	assert.False(t, sec.CheckPasswordHash("vinyl4life", ""))
}
