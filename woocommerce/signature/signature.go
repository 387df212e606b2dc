package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Header carries the signature of a WooCommerce webhook delivery
const Header = "X-WC-Webhook-Signature"

var (
	// ErrMissing is returned when a delivery carries no signature
	ErrMissing = errors.New("signature header is empty")

	// ErrMismatch is returned when the signature does not match the body
	ErrMismatch = errors.New("signature mismatch")
)

// Sign returns base64(HMAC-SHA256(secret, body)), the value WooCommerce puts in Header
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks header against the body using constant-time comparison
func Verify(secret string, body []byte, header string) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return ErrMissing
	}

	expected, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	if subtle.ConstantTimeCompare(expected, mac.Sum(nil)) != 1 {
		return ErrMismatch
	}
	return nil
}
