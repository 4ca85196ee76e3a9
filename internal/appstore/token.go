package appstore

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yukhold/indlovu/internal/config"
)

// tokenTTL is the App Store Connect token lifetime. The API rejects tokens
// valid for longer than 20 minutes.
const tokenTTL = 20 * time.Minute

// tokenAudience is the fixed audience claim for App Store Connect v1.
const tokenAudience = "appstoreconnect-v1"

// IssueToken generates an ES256-signed bearer token for the App Store
// Connect API from the configured issuer, key ID and .p8 private key file.
// The token is assumed valid for the duration of one run.
func IssueToken(cfg *config.Config) (string, error) {
	if err := cfg.ValidateCredentials(); err != nil {
		return "", err
	}

	pemBytes, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return "", fmt.Errorf("read private key %s: %w", cfg.PrivateKeyPath, err)
	}

	key, err := jwt.ParseECPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": cfg.IssuerID,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
		"aud": tokenAudience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = cfg.KeyID

	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}
