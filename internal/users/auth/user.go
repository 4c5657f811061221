// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

/*
Package auth implements the user account and authentication layer.

It defines the core domain entity (User), the validation rules governing
registration and credential changes, and the login lockout policy.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
Username and email are held in normalized (lower-cased, trimmed) form; the
store's unique indexes operate on the normalized values, which is what makes
uniqueness case-insensitive.
*/
package auth

import (
	"strings"
	"time"
)

// # Domain Entities

// User represents a registered member of the Cratedig platform.
//
// The three Discogs fields are all-or-nothing: an account either carries a
// complete credential set or none of it. Empty string means absent.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Discogs integration credentials. Key and secret are never serialized.
	DiscogsUsername       string `json:"discogs_username,omitempty"`
	DiscogsConsumerKey    string `json:"-"`
	DiscogsConsumerSecret string `json:"-"`
}

// IsDiscogsConnected reports whether the account carries a complete Discogs
// credential set.
func (user *User) IsDiscogsConnected() bool {
	return user.DiscogsUsername != "" &&
		user.DiscogsConsumerKey != "" &&
		user.DiscogsConsumerSecret != ""
}

// # Normalization

// NormalizeUsername lower-cases and trims a username for storage and lookup.
// The username alphabet is ASCII-only, so strings.ToLower is an exact fold.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail lower-cases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

// Global field names for validation and identity mapping in the account domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldLogin           = "login"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldDiscogsUsername = "discogs_username"
	FieldConsumerKey     = "consumer_key"
	FieldConsumerSecret  = "consumer_secret"
)
