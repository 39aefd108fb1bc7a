package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nubac/wasender-backend/internal/model"
)

func TestPhoneHash(t *testing.T) {
	h := model.PhoneHash("u1", "+5215500000000")

	assert.Len(t, h, 64, "hex-encoded sha256")
	assert.Equal(t, h, model.PhoneHash("u1", "+5215500000000"), "deterministic")
	assert.NotEqual(t, h, model.PhoneHash("u2", "+5215500000000"), "scoped per tenant")
	assert.NotContains(t, h, "+", "raw phone never leaks into the key")
}
