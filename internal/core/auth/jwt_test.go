package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"course-choose-api/internal/domain"
)

func testJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "course-choose-test"}
}

func sampleUser() domain.User {
	return domain.User{
		ID:       7,
		Name:     "Ada",
		Username: "ada",
		Gender:   domain.GenderFemale,
		Email:    "ada@example.com",
		Password: "digest-that-must-not-leak",
		Roles:    domain.RolesOf(domain.RoleAdministrator),
	}
}

func TestJWTer_IssueAndVerify(t *testing.T) {
	j := testJWTer()

	tok, err := j.Issue(sampleUser())
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	u, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.True(t, u.Roles.Has(domain.RoleAdministrator))
	assert.Empty(t, u.Password)
}

func TestJWTer_PayloadExcludesPassword(t *testing.T) {
	tok, err := testJWTer().Issue(sampleUser())
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "digest-that-must-not-leak")
	assert.NotContains(t, string(payload), "password")
	assert.Contains(t, string(payload), `"roles":[0]`)
}

func TestJWTer_NoExpiryWhenTTLZero(t *testing.T) {
	j := testJWTer()
	tok, err := j.Issue(sampleUser())
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Nil(t, c.ExpiresAt)
	assert.Equal(t, "7", c.Subject)
}

func TestJWTer_Expired(t *testing.T) {
	j := testJWTer()
	j.TTL = -2 * time.Minute // 超出 60s 容差

	tok, err := j.Issue(sampleUser())
	require.NoError(t, err)

	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTer_WrongSecret(t *testing.T) {
	tok, err := testJWTer().Issue(sampleUser())
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "course-choose-test"}
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTer_Malformed(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
		_, err := testJWTer().Verify(tok)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, tok)
	}
}

func TestJWTer_WrongIssuer(t *testing.T) {
	tok, err := testJWTer().Issue(sampleUser())
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else"}
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
