package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testGate(t *testing.T) *Gate {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewGate(Config{PasswordHash: string(h), JWTSecret: "s3cret", TokenTTLMinutes: 60})
}

func TestGate_Check(t *testing.T) {
	g := testGate(t)
	assert.True(t, g.Check("open sesame"))
	assert.False(t, g.Check("open sesame "))
	assert.False(t, NewGate(Config{}).Check(""))
}

func TestGate_LoginAndVerify(t *testing.T) {
	g := testGate(t)

	token, expires, err := g.Login("open sesame")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := g.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)

	_, _, err = g.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestGate_VerifyRejects(t *testing.T) {
	g := testGate(t)
	token, _, err := g.Login("open sesame")
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		later := *g
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("OtherSecret", func(t *testing.T) {
		other := NewGate(Config{JWTSecret: "different"})
		_, err := other.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := g.Verify("not-a-token")
		assert.Error(t, err)
	})

	t.Run("NoSecret", func(t *testing.T) {
		_, err := NewGate(Config{}).Verify(token)
		assert.ErrorIs(t, err, ErrDisabled)
	})
}

func TestGate_Disabled(t *testing.T) {
	g := NewGate(Config{JWTSecret: "x"})
	assert.False(t, g.Enabled())
	_, _, err := g.Login("anything")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("pw")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
