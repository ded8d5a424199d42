package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Config holds the middleware settings.
type Config struct {
	// ApiKey is accepted in the X-API-Key header. Empty disables key access.
	ApiKey string
	// VerifyToken validates "Authorization: Bearer" tokens. Nil disables token access.
	VerifyToken func(token string) error
	// Public lists path prefixes served without credentials. Credentials they
	// carry are still resolved into LocalsKey.
	Public []string
	// Logger receives the open-gate warning.
	Logger *zap.Logger
}

// LocalsKey is set to the authentication method of the request ("api_key",
// "session", "open" or "" when no valid credential was presented).
const LocalsKey = "auth"

// Authentication methods stored under LocalsKey.
const (
	MethodAPIKey  = "api_key"
	MethodSession = "session"
	MethodOpen    = "open"
)

// New returns a middleware rejecting requests that carry neither the API key nor a
// valid session token. With no credential source configured at all every request is
// let through and a warning is logged once.
func New(cfg Config) fiber.Handler {
	open := cfg.ApiKey == "" && cfg.VerifyToken == nil
	if open && cfg.Logger != nil {
		cfg.Logger.Warn("No API key or password configured, the API is open to anyone who can reach it")
	}

	return func(c *fiber.Ctx) error {
		if open {
			c.Locals(LocalsKey, MethodOpen)
			return c.Next()
		}

		method := cfg.resolve(c)
		c.Locals(LocalsKey, method)
		if method != "" {
			return c.Next()
		}
		for _, prefix := range cfg.Public {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
}

// resolve returns the method of the first valid credential the request carries.
func (cfg Config) resolve(c *fiber.Ctx) string {
	if cfg.ApiKey != "" && KeyMatches(c.Get("X-API-Key"), cfg.ApiKey) {
		return MethodAPIKey
	}
	if cfg.VerifyToken != nil {
		if token, ok := BearerToken(c); ok && cfg.VerifyToken(token) == nil {
			return MethodSession
		}
	}
	return ""
}

// KeyMatches compares a presented key with the configured one in constant time.
func KeyMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c *fiber.Ctx) (string, bool) {
	token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	return token, ok && token != ""
}

// Authenticated reports whether the request presented a valid credential.
func Authenticated(c *fiber.Ctx) bool {
	m, _ := c.Locals(LocalsKey).(string)
	return m == MethodAPIKey || m == MethodSession
}
