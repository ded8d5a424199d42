package session

import (
	"kb-admin/core/auth"
	authmw "kb-admin/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Prefix is the route prefix served without credentials.
const Prefix = "/session"

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the session feature. Status relies on the gate middleware
// from GateConfig running in front of it.
func NewFeature(gate *auth.Gate, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(gate, logger)}
}

// GateConfig builds the authentication middleware settings: the static API key,
// session tokens issued by gate when password login is enabled, and the session
// routes kept public so that login is reachable.
func GateConfig(gate *auth.Gate, apiKey string, logger *zap.Logger) authmw.Config {
	cfg := authmw.Config{
		ApiKey: apiKey,
		Public: []string{Prefix},
		Logger: logger,
	}
	if gate.Enabled() {
		cfg.VerifyToken = func(token string) error {
			_, err := gate.Verify(token)
			return err
		}
	}
	return cfg
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "session"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
