package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test-key-secret"

	valid := sign("order_abc", "pay_xyz", secret)

	assert.True(t, VerifySignature("order_abc", "pay_xyz", valid, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", valid, "other-secret"))
	assert.False(t, VerifySignature("order_other", "pay_xyz", valid, secret))
	assert.False(t, VerifySignature("order_abc", "pay_other", valid, secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "deadbeef", secret))
	assert.False(t, VerifySignature("order_abc", "pay_xyz", "", secret))
}
