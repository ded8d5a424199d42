package agent

import (
	remote "kb-admin/core/agent"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	enabled bool
	handler *Handler
}

// NewFeature creates the agent feature. It is disabled when no deployment URL is set.
func NewFeature(cfg remote.Config, logger *zap.Logger) *Feature {
	return &Feature{
		enabled: cfg.URL != "",
		handler: NewHandler(remote.NewClient(cfg), logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "agent"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
