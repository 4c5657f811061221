// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/cratedig/internal/platform/sec"
)

// writeTestKeyPair generates a throwaway RSA key pair and writes it as PEM
// files under t.TempDir, returning both paths.
func writeTestKeyPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath = filepath.Join(dir, "jwt.pem")
	publicPath = filepath.Join(dir, "jwt.pub.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	return privatePath, publicPath
}

/*
TestTokenService_Roundtrip verifies that a generated access token verifies
and carries the embedded user claims.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "cratedig.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(42, "cratedigger", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "cratedigger", claims.Username)
	assert.Equal(t, "cratedig.app", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

/*
TestTokenService_RejectsExpired verifies that an already expired token fails
verification.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "cratedig.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken(42, "cratedigger", -1*time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignSignature verifies that a token signed with a
different key pair fails verification.
*/
func TestTokenService_RejectsForeignSignature(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)
	foreignPrivatePath, foreignPublicPath := writeTestKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "cratedig.app")
	require.NoError(t, err)

	foreign, err := sec.NewTokenService(foreignPrivatePath, foreignPublicPath, "cratedig.app")
	require.NoError(t, err)

	token, err := foreign.GenerateAccessToken(42, "cratedigger", 15*time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsGarbage verifies that malformed input fails cleanly.
*/
func TestTokenService_RejectsGarbage(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)

	service, err := sec.NewTokenService(privatePath, publicPath, "cratedig.app")
	require.NoError(t, err)

	_, err = service.VerifyToken("not.a.jwt")
	assert.Error(t, err)
}
