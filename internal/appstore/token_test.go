package appstore

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/yukhold/indlovu/internal/config"
)

func writeTestKey(t *testing.T) (string, *ecdsa.PrivateKey) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der})
	path := filepath.Join(t.TempDir(), "AuthKey_TEST.p8")
	require.NoError(t, os.WriteFile(path, pemBytes, 0o600))

	return path, key
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	keyPath, key := writeTestKey(t)

	cfg := &config.Config{
		IssuerID:       "issuer-uuid",
		KeyID:          "TESTKEY",
		PrivateKeyPath: keyPath,
		AppID:          "123",
	}

	signed, err := IssueToken(cfg)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"ES256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	require.Equal(t, "TESTKEY", parsed.Header["kid"])

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "issuer-uuid", claims["iss"])

	audience, err := claims.GetAudience()
	require.NoError(t, err)
	require.Contains(t, audience, tokenAudience)
}

func TestIssueToken_MissingCredentials(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{KeyID: "TESTKEY", PrivateKeyPath: "key.p8", AppID: "123"}

	_, err := IssueToken(cfg)
	require.ErrorIs(t, err, config.ErrMissingIssuerID)
}

func TestIssueToken_MissingKeyFile(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		IssuerID:       "issuer-uuid",
		KeyID:          "TESTKEY",
		PrivateKeyPath: filepath.Join(t.TempDir(), "absent.p8"),
		AppID:          "123",
	}

	_, err := IssueToken(cfg)
	require.ErrorContains(t, err, "read private key")
}
