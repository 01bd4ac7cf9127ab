// Package signature verifies HMAC-SHA256 signatures attached to
// client-submitted payment confirmations and to gateway webhooks.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrNoSecret means the required secret is not configured. Callers must
// treat it as a hard failure, never as a successful verification.
var ErrNoSecret = errors.New("signature: secret not configured")

type Verifier struct {
	keySecret     []byte
	webhookSecret []byte
}

func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{
		keySecret:     []byte(keySecret),
		webhookSecret: []byte(webhookSecret),
	}
}

// Payment checks a client-submitted confirmation: the signature is an
// HMAC-SHA256 hex digest of "orderID|paymentID" under the API key secret.
func (v *Verifier) Payment(orderID, paymentID, sig string) (bool, error) {
	if len(v.keySecret) == 0 {
		return false, ErrNoSecret
	}
	return match(v.keySecret, []byte(orderID+"|"+paymentID), sig), nil
}

// Webhook checks a gateway webhook: the signature covers the exact raw
// request body bytes, keyed by the webhook secret. The body must not be
// re-serialized before verification.
func (v *Verifier) Webhook(body []byte, sig string) (bool, error) {
	if len(v.webhookSecret) == 0 {
		return false, ErrNoSecret
	}
	return match(v.webhookSecret, body, sig), nil
}

func match(secret, message []byte, sig string) bool {
	if sig == "" {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))
	// hmac.Equal keeps the comparison constant time
	return hmac.Equal([]byte(expected), []byte(sig))
}
