package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer  = "kb-admin"
	subject = "admin"
)

var (
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrDisabled is returned when sessions are requested but no password hash or
	// signing secret is configured.
	ErrDisabled = errors.New("password login is not configured")
)

// Claims are the claims carried by a session token.
type Claims struct {
	jwt.RegisteredClaims
}

// Gate checks the admin password and issues and verifies session tokens.
type Gate struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewGate creates a gate from configuration.
func NewGate(cfg Config) *Gate {
	ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Gate{
		hash:   []byte(cfg.PasswordHash),
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Enabled reports whether password sessions can be issued.
func (g *Gate) Enabled() bool {
	return len(g.hash) > 0 && len(g.secret) > 0
}

// Check reports whether password matches the configured hash.
func (g *Gate) Check(password string) bool {
	if len(g.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
}

// Login checks the password and returns a signed session token and its expiry.
func (g *Gate) Login(password string) (string, time.Time, error) {
	if !g.Enabled() {
		return "", time.Time{}, ErrDisabled
	}
	if !g.Check(password) {
		return "", time.Time{}, ErrInvalidPassword
	}

	now := g.now()
	expires := now.Add(g.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expires, nil
}

// Verify validates a session token and returns its claims.
func (g *Gate) Verify(token string) (*Claims, error) {
	if len(g.secret) == 0 {
		return nil, ErrDisabled
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject != subject {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// HashPassword returns the bcrypt hash to put in auth.password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
