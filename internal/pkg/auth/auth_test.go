package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(secret string, ttl time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: secret, TokenExp: ttl, TokenIssuer: "test"})
}

func TestJWT_IssueAndVerify(t *testing.T) {
	svc := newTestJWT("secret", time.Hour)
	id := uuid.New()

	token, err := svc.Issue(id)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWT("secret", time.Hour)
	id := uuid.New()

	a, err := svc.Issue(id)
	require.NoError(t, err)
	b, err := svc.Issue(id)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := newTestJWT("secret-a", time.Hour).Issue(uuid.New())
	require.NoError(t, err)

	_, err = newTestJWT("secret-b", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	svc := newTestJWT("secret", time.Minute)
	issuedAt := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWT_Malformed(t *testing.T) {
	svc := newTestJWT("secret", time.Hour)

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestJWT_RejectsNonUUIDSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestJWT("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(DefaultBcryptCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.Check(hash, "correct horse"))
	assert.False(t, h.Check(hash, "wrong horse"))
}

func TestOTPGenerator(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	g := NewOTPGenerator(6, 10*time.Minute)
	g.now = func() time.Time { return fixed }

	digits := regexp.MustCompile(`^\d{6}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		code, expires := g.Generate()
		assert.Regexp(t, digits, code)
		assert.Equal(t, fixed.Add(10*time.Minute), expires)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
