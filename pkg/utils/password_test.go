package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_Deterministic(t *testing.T) {
	h := NewPasswordHasher("app-secret")

	first := h.Hash("hunter2")
	second := h.Hash("hunter2")

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Len(t, first, hashKeyLen*2)
	assert.NotContains(t, first, "hunter2")
}

func TestPasswordHasher_DistinctInputs(t *testing.T) {
	h := NewPasswordHasher("app-secret")
	corpus := []string{"", "a", "b", "password", "Password", "password ", "密码", "hunter2"}

	seen := make(map[string]string, len(corpus))
	for _, s := range corpus {
		d := h.Hash(s)
		if prev, ok := seen[d]; ok {
			t.Fatalf("collision between %q and %q", prev, s)
		}
		seen[d] = s
	}
}

func TestPasswordHasher_SecretChangesDigest(t *testing.T) {
	a := NewPasswordHasher("secret-a")
	b := NewPasswordHasher("secret-b")

	assert.NotEqual(t, a.Hash("same"), b.Hash("same"))
}
