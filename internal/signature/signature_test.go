package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hmacHex(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentMatch(t *testing.T) {
	v := NewVerifier("key_secret", "webhook_secret")

	sig := hmacHex("key_secret", "order_abc|pay_xyz")
	ok, err := v.Payment("order_abc", "pay_xyz", sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPaymentMutatedSignature(t *testing.T) {
	v := NewVerifier("key_secret", "webhook_secret")

	sig := hmacHex("key_secret", "order_abc|pay_xyz")
	// flipping any single character must break the match
	for i := range sig {
		mutated := []byte(sig)
		if mutated[i] == 'f' {
			mutated[i] = '0'
		} else {
			mutated[i] = 'f'
		}
		ok, err := v.Payment("order_abc", "pay_xyz", string(mutated))
		require.NoError(t, err)
		assert.False(t, ok, "position %d", i)
	}
}

func TestPaymentWrongPair(t *testing.T) {
	v := NewVerifier("key_secret", "webhook_secret")

	sig := hmacHex("key_secret", "order_abc|pay_xyz")
	ok, err := v.Payment("order_abc", "pay_other", sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPaymentMissingSecretFailsClosed(t *testing.T) {
	v := NewVerifier("", "webhook_secret")

	ok, err := v.Payment("order_abc", "pay_xyz", hmacHex("", "order_abc|pay_xyz"))
	assert.ErrorIs(t, err, ErrNoSecret)
	assert.False(t, ok)
}

func TestWebhookMatchOverRawBytes(t *testing.T) {
	v := NewVerifier("key_secret", "webhook_secret")

	body := []byte(`{"event":"payment.captured","payload":{}}`)
	ok, err := v.Webhook(body, hmacHex("webhook_secret", string(body)))
	require.NoError(t, err)
	assert.True(t, ok)

	// a whitespace-only difference is a different byte stream
	reserialized := []byte(`{"event": "payment.captured", "payload": {}}`)
	ok, err = v.Webhook(reserialized, hmacHex("webhook_secret", string(body)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWebhookUsesWebhookSecretNotKeySecret(t *testing.T) {
	v := NewVerifier("key_secret", "webhook_secret")

	body := []byte(`{"event":"payment.captured"}`)
	ok, err := v.Webhook(body, hmacHex("key_secret", string(body)))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWebhookMissingSecretFailsClosed(t *testing.T) {
	v := NewVerifier("key_secret", "")

	body := []byte(`{}`)
	ok, err := v.Webhook(body, hmacHex("", "{}"))
	assert.ErrorIs(t, err, ErrNoSecret)
	assert.False(t, ok)
}

func TestEmptySignature(t *testing.T) {
	v := NewVerifier("key_secret", "webhook_secret")

	ok, err := v.Payment("order_abc", "pay_xyz", "")
	require.NoError(t, err)
	assert.False(t, ok)
}
