package agent

import (
	"context"
	"errors"
	"strings"

	remote "kb-admin/core/agent"
	"kb-admin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Invoker runs the remote agent graph.
type Invoker interface {
	Graph() string
	InvokeMessages(ctx context.Context, messages []remote.Message) (map[string]any, error)
}

// InvokeRequest is the body of an agent run.
type InvokeRequest struct {
	// Message is a single user message. Ignored when Messages is set.
	Message string `json:"message"`
	// Messages is a full conversation.
	Messages []remote.Message `json:"messages"`
}

// InvokeResponse is the output of an agent run.
type InvokeResponse struct {
	Graph string         `json:"graph"`
	Reply string         `json:"reply"`
	State map[string]any `json:"state"`
}

// Handler handles HTTP requests for the remote agent.
type Handler struct {
	client Invoker
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(client Invoker, logger *zap.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// RegisterRoutes registers the agent routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/agent")
	group.Post("/invoke", h.HandleInvoke)
}

// HandleInvoke runs the agent graph and waits for its output.
// @Summary Invoke Agent
// @Description Run the configured graph on the remote agent deployment and return its final state.
// @Tags agent
// @Accept json
// @Produce json
// @Param request body agent.InvokeRequest true "Message or conversation"
// @Success 200 {object} agent.InvokeResponse
// @Failure 400 {object} map[string]string "Empty message"
// @Failure 502 {object} map[string]string "Agent run failed"
// @Failure 503 {object} map[string]string "Agent not configured"
// @Router /agent/invoke [post]
func (h *Handler) HandleInvoke(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req InvokeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
	}
	messages := req.Messages
	if len(messages) == 0 {
		if strings.TrimSpace(req.Message) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
		}
		messages = []remote.Message{{Role: "user", Content: req.Message}}
	}

	state, err := h.client.InvokeMessages(c.Context(), messages)
	if err != nil {
		if errors.Is(err, remote.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Agent run failed", zap.String("graph", h.client.Graph()), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(InvokeResponse{
		Graph: h.client.Graph(),
		Reply: remote.LastMessage(state),
		State: state,
	})
}
