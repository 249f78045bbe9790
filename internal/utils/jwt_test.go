package utils

import (
	"fitness_tracker/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)
	tok, err := svc.Issue(7)
	require.NoError(t, err)

	userID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestTokenService_DistinctUsers(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret", time.Hour)
	tokA, err := svc.Issue(1)
	require.NoError(t, err)
	tokB, err := svc.Issue(2)
	require.NoError(t, err)

	gotA, err := svc.Verify(tokA)
	require.NoError(t, err)
	gotB, err := svc.Verify(tokB)
	require.NoError(t, err)
	assert.Equal(t, uint(1), gotA)
	assert.Equal(t, uint(2), gotB)
}

func TestTokenService_DefaultTTLIsSevenDays(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("k", 0).WithClock(func() time.Time { return issued })
	tok, err := svc.Issue(3)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	issued := time.Now().Add(-8 * 24 * time.Hour)
	svc := NewTokenService("secret", DefaultTokenTTL)
	tok, err := svc.WithClock(func() time.Time { return issued }).Issue(1)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret", time.Hour).Issue(1)
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalidSignature)
}

func TestTokenService_TamperedPayload(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret", time.Hour)
	tokA, err := svc.Issue(1)
	require.NoError(t, err)
	tokB, err := svc.Issue(2)
	require.NoError(t, err)

	// Header and payload of B with the signature of A
	partsA := strings.Split(tokA, ".")
	partsB := strings.Split(tokB, ".")
	forged := partsB[0] + "." + partsB[1] + "." + partsA[2]

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, domain.ErrTokenInvalidSignature)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalidSignature)
}

func TestTokenService_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	for _, tok := range []string{"not.a.jwt", "garbage", "a.b"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, tok)
	}
}

func TestTokenService_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("k", time.Hour).Verify("")
	assert.ErrorIs(t, err, domain.ErrTokenMissing)
}

func TestTokenService_ZeroUserIsMalformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("k", time.Hour)
	tok, err := svc.Issue(0)
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}
