package session

import (
	"errors"
	"time"

	"kb-admin/core/auth"
	"kb-admin/core/logger"
	authmw "kb-admin/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LoginRequest is the body of a login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries a session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Status reports whether the caller is signed in.
type Status struct {
	Authenticated bool `json:"authenticated"`
	// Open is set when no credential is configured and the API is unguarded.
	Open      bool       `json:"open"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Handler handles login and session status.
type Handler struct {
	gate   *auth.Gate
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(gate *auth.Gate, logger *zap.Logger) *Handler {
	return &Handler{gate: gate, logger: logger}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/session")
	group.Post("/login", h.HandleLogin)
	group.Get("/status", h.HandleStatus)
}

// HandleLogin exchanges the admin password for a session token.
// @Summary Login
// @Description Check the admin password and return a bearer token.
// @Tags session
// @Accept json
// @Produce json
// @Param request body session.LoginRequest true "Password"
// @Success 200 {object} session.LoginResponse
// @Failure 401 {object} map[string]string "Invalid password"
// @Failure 503 {object} map[string]string "Password login not configured"
// @Router /session/login [post]
func (h *Handler) HandleLogin(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	token, expires, err := h.gate.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidPassword):
		l.Warn("Rejected login", zap.String("ip", c.IP()))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
	case err != nil:
		l.Error("Login failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Session started", zap.Time("expires_at", expires))
	return c.JSON(LoginResponse{Token: token, ExpiresAt: expires})
}

// HandleStatus reports whether the request carries a valid credential.
// @Summary Session Status
// @Tags session
// @Produce json
// @Success 200 {object} session.Status
// @Router /session/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	if c.Locals(authmw.LocalsKey) == authmw.MethodOpen {
		return c.JSON(Status{Authenticated: true, Open: true})
	}
	if !authmw.Authenticated(c) {
		return c.JSON(Status{})
	}

	status := Status{Authenticated: true}
	if c.Locals(authmw.LocalsKey) == authmw.MethodSession {
		token, _ := authmw.BearerToken(c)
		if claims, err := h.gate.Verify(token); err == nil {
			exp := claims.ExpiresAt.Time
			status.ExpiresAt = &exp
		}
	}
	return c.JSON(status)
}
