// Package agent implements the AgentInvoker port over the hosted agent
// service's HTTP API.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
)

// DefaultTimeout bounds one agent call. Agent runs routinely take minutes.
const DefaultTimeout = 5 * time.Minute

// maxResponseBytes caps the decoded response body.
const maxResponseBytes = 8 << 20

// Config configures a Client.
type Config struct {
	Endpoint   string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// Client posts task messages to the agent service.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *logging.Logger
}

// NewClient creates a client for cfg.Endpoint.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid agent endpoint %q", cfg.Endpoint)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	return &Client{
		endpoint: u.String(),
		apiKey:   cfg.APIKey,
		client:   cfg.HTTPClient,
		logger:   cfg.Logger,
	}, nil
}

type invokeRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

type invokeResponse struct {
	Success  *bool `json:"success"`
	Response *struct {
		Result json.RawMessage `json:"result"`
	} `json:"response"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Invoke implements core.AgentInvoker. Failures reported by the service,
// including non-2xx responses, come back as an unsuccessful Envelope; an
// error is returned only when no response could be read.
func (c *Client) Invoke(ctx context.Context, message, agentID string) (core.Envelope, error) {
	body, err := json.Marshal(invokeRequest{Message: message, AgentID: agentID})
	if err != nil {
		return core.Envelope{}, fmt.Errorf("encoding agent request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return core.Envelope{}, fmt.Errorf("building agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithAgent(agentID).Warn("agent request failed", "error", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return core.Envelope{}, core.ErrTransport("The agent service did not respond in time.").WithCause(err)
		}
		return core.Envelope{}, core.ErrTransport("Could not reach the agent service.").WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return core.Envelope{}, core.ErrTransport("Could not read the agent service response.").WithCause(err)
	}
	c.logger.WithAgent(agentID).Debug("agent responded",
		"status", resp.StatusCode, "bytes", len(data), "duration", time.Since(start))

	return decodeEnvelope(resp.StatusCode, resp.Status, data), nil
}

func decodeEnvelope(code int, status string, data []byte) core.Envelope {
	ok2xx := code >= 200 && code < 300
	fallback := fmt.Sprintf("agent service returned %s", status)

	var parsed invokeResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if ok2xx {
			return core.Envelope{Success: false, Error: "agent service returned an unreadable response"}
		}
		return core.Envelope{Success: false, Error: fallback}
	}

	env := core.Envelope{Error: parsed.Error}
	if env.Error == "" && parsed.Success != nil && !*parsed.Success {
		env.Error = parsed.Message
	}
	if parsed.Response != nil {
		env.Result = parsed.Response.Result
	}
	env.Success = ok2xx && parsed.Success != nil && *parsed.Success
	if !env.Success && env.Error == "" && !ok2xx {
		env.Error = fallback
	}
	return env
}
