package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrNotConfigured is returned when no deployment URL is set.
var ErrNotConfigured = errors.New("remote agent url is not configured")

// Message is one chat message of the graph input.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type runRequest struct {
	AssistantID string `json:"assistant_id"`
	Input       struct {
		Messages []Message `json:"messages"`
	} `json:"input"`
}

// RemoteError reports a run the deployment answered with a non-2xx status.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("agent run failed with status %d: %s", e.Status, e.Body)
}

// Client runs a graph on a remote LangGraph deployment and waits for its output.
type Client struct {
	cfg Config
}

// NewClient creates a remote agent client.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg}
}

// Graph returns the assistant id runs are started with.
func (c *Client) Graph() string {
	return c.cfg.Graph
}

// Invoke sends a single user message and returns the final graph state.
func (c *Client) Invoke(ctx context.Context, message string) (map[string]any, error) {
	return c.InvokeMessages(ctx, []Message{{Role: "user", Content: message}})
}

// InvokeMessages starts a stateless run with the given messages and blocks until it
// completes.
func (c *Client) InvokeMessages(ctx context.Context, messages []Message) (map[string]any, error) {
	if c.cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var req runRequest
	req.AssistantID = c.cfg.Graph
	req.Input.Messages = messages

	a := fiber.Post(strings.TrimRight(c.cfg.URL, "/") + "/runs/wait")
	a.JSON(req)
	if c.cfg.APIKey != "" {
		a.Set("X-Api-Key", c.cfg.APIKey)
	}
	if err := a.Parse(); err != nil {
		return nil, fmt.Errorf("invalid agent url: %w", err)
	}

	timeout := time.Duration(c.cfg.TimeoutSeconds) * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); timeout <= 0 || left < timeout {
			timeout = left
		}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("agent request: %w", errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		return nil, &RemoteError{Status: code, Body: string(body)}
	}

	var state map[string]any
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("decode agent output: %w", err)
	}
	return state, nil
}

// LastMessage returns the content of the final message of a graph state, or "" when
// the state carries no messages.
func LastMessage(state map[string]any) string {
	msgs, _ := state["messages"].([]any)
	if len(msgs) == 0 {
		return ""
	}
	last, _ := msgs[len(msgs)-1].(map[string]any)
	switch c := last["content"].(type) {
	case string:
		return c
	case []any:
		// content blocks: [{"type":"text","text":"..."}]
		var parts []string
		for _, block := range c {
			if b, ok := block.(map[string]any); ok {
				if text, ok := b["text"].(string); ok {
					parts = append(parts, text)
				}
			}
		}
		return strings.Join(parts, "")
	}
	return ""
}
