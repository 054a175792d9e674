// Package client wraps an MCP client session over a host subprocess.
// It launches the host, runs the handshake, and exposes discovery and
// invocation with explicit results: every operation returns a value or
// an error, never a logged-and-swallowed failure.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/datacorp/analytics-mcp/internal/buildinfo"
)

// Name is the implementation name advertised during the MCP handshake.
const Name = "analytics-client"

// Client is a connected session to a single capability host.
type Client struct {
	logger  *slog.Logger
	session *mcp.ClientSession

	closeOnce sync.Once
	closeErr  error
}

// Connect launches the host binary at path as a subprocess and performs
// the MCP handshake over its stdio. The path must name an existing
// executable; anything else is a validation error before any process is
// spawned.
func Connect(ctx context.Context, path string, logger *slog.Logger) (*Client, error) {
	if err := validateServerPath(path); err != nil {
		return nil, err
	}
	return connect(ctx, &mcp.CommandTransport{Command: exec.Command(path)}, logger)
}

// ConnectTransport performs the handshake over an existing transport.
// Used by tests to wire client and host in-process.
func ConnectTransport(ctx context.Context, t mcp.Transport, logger *slog.Logger) (*Client, error) {
	return connect(ctx, t, logger)
}

func connect(ctx context.Context, t mcp.Transport, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "client")

	impl := &mcp.Implementation{Name: Name, Version: buildinfo.Version}
	session, err := mcp.NewClient(impl, nil).Connect(ctx, t, nil)
	if err != nil {
		logger.Error("connection failed", "error", err)
		return nil, fmt.Errorf("connect to host: %w", err)
	}

	logger.Info("connected to capability host")
	return &Client{logger: logger, session: session}, nil
}

func validateServerPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("server binary: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("server binary %s is a directory", path)
	}
	if info.Mode()&0o111 == 0 {
		return fmt.Errorf("server binary %s is not executable", path)
	}
	return nil
}

// Tools lists the tools the host advertises.
func (c *Client) Tools(ctx context.Context) ([]*mcp.Tool, error) {
	res, err := c.session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	c.logger.Info("discovered tools", "count", len(res.Tools))
	return res.Tools, nil
}

// Resources lists the host's concrete resources.
func (c *Client) Resources(ctx context.Context) ([]*mcp.Resource, error) {
	res, err := c.session.ListResources(ctx, &mcp.ListResourcesParams{})
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	c.logger.Info("discovered resources", "count", len(res.Resources))
	return res.Resources, nil
}

// ResourceTemplates lists the host's parameterized resources.
func (c *Client) ResourceTemplates(ctx context.Context) ([]*mcp.ResourceTemplate, error) {
	res, err := c.session.ListResourceTemplates(ctx, &mcp.ListResourceTemplatesParams{})
	if err != nil {
		return nil, fmt.Errorf("list resource templates: %w", err)
	}
	return res.ResourceTemplates, nil
}

// Prompts lists the host's prompt templates.
func (c *Client) Prompts(ctx context.Context) ([]*mcp.Prompt, error) {
	res, err := c.session.ListPrompts(ctx, &mcp.ListPromptsParams{})
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	c.logger.Info("discovered prompts", "count", len(res.Prompts))
	return res.Prompts, nil
}

// CallTool invokes a tool by name. Host-reported tool failures come back
// as Result{Kind: KindError}; protocol failures (unknown tool, transport
// loss, cancellation) come back as an error.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (Result, error) {
	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return Result{}, fmt.Errorf("call tool %s: %w", name, err)
	}
	c.logger.Info("tool call completed", "tool", name, "is_error", res.IsError)
	return resultFromCall(res), nil
}

// CallToolWithTimeout is CallTool under an external deadline. The host
// is not consulted about cancellation; the caller just stops waiting.
func (c *Client) CallToolWithTimeout(ctx context.Context, timeout time.Duration, name string, args map[string]any) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.CallTool(ctx, name, args)
}

// ReadResource reads a resource by URI, concrete or templated.
func (c *Client) ReadResource(ctx context.Context, uri string) (Result, error) {
	res, err := c.session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
	if err != nil {
		return Result{}, fmt.Errorf("read resource %s: %w", uri, err)
	}
	c.logger.Info("resource read", "uri", uri)
	return resultFromRead(res), nil
}

// GetPrompt renders a prompt template with the given arguments.
func (c *Client) GetPrompt(ctx context.Context, name string, args map[string]string) (*mcp.GetPromptResult, error) {
	res, err := c.session.GetPrompt(ctx, &mcp.GetPromptParams{Name: name, Arguments: args})
	if err != nil {
		return nil, fmt.Errorf("get prompt %s: %w", name, err)
	}
	c.logger.Info("prompt rendered", "prompt", name, "messages", len(res.Messages))
	return res, nil
}

// Close shuts down the session and the host subprocess. Safe to call
// more than once; later calls return the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.logger.Info("closing client session")
		c.closeErr = c.session.Close()
	})
	return c.closeErr
}
