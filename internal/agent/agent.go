// Package agent implements the orchestrator: a chat-completion loop
// that lets the model call the capability host's tools.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/datacorp/analytics-mcp/internal/client"
	"github.com/datacorp/analytics-mcp/internal/llm"
)

// systemPrompt frames the model as a business analytics assistant with
// access to the host's tools.
const systemPrompt = "You are a helpful business analytics assistant. " +
	"Use the available tools to answer questions about sales data, " +
	"profitability metrics, and revenue forecasts. Be concise and cite " +
	"the numbers the tools return."

// maxToolRounds bounds how many tool-execution rounds a single query
// may trigger before the conversation is force-finished.
const maxToolRounds = 5

// Orchestrator owns one LLM client and one host session.
type Orchestrator struct {
	logger *slog.Logger
	llm    llm.Client
	client *client.Client
	model  string
}

// New creates an Orchestrator. The client must already be connected.
func New(logger *slog.Logger, llmClient llm.Client, mcpClient *client.Client, model string) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		logger: logger.With("component", "agent"),
		llm:    llmClient,
		client: mcpClient,
		model:  model,
	}
}

// Answer runs one query through the chat loop: discover tools, let the
// model request calls, execute them against the host, and return the
// model's final text. Any failure along the way is returned to the
// caller; nothing is swallowed.
func (a *Orchestrator) Answer(ctx context.Context, query string) (string, error) {
	logger := a.logger.With("request_id", uuid.NewString())

	declarations, err := a.toolDeclarations(ctx)
	if err != nil {
		return "", err
	}
	logger.Info("query started", "tools", len(declarations))

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: query},
	}

	for round := 0; ; round++ {
		resp, err := a.llm.Chat(ctx, a.model, messages, declarations)
		if err != nil {
			return "", fmt.Errorf("chat request: %w", err)
		}

		if len(resp.Message.ToolCalls) == 0 {
			logger.Info("query completed",
				"rounds", round,
				"input_tokens", resp.InputTokens,
				"output_tokens", resp.OutputTokens,
			)
			return resp.Message.Content, nil
		}
		if round >= maxToolRounds {
			return "", fmt.Errorf("tool rounds exceeded %d without a final answer", maxToolRounds)
		}

		messages = append(messages, resp.Message)
		for _, call := range resp.Message.ToolCalls {
			toolMsg, err := a.executeToolCall(ctx, logger, call)
			if err != nil {
				return "", err
			}
			messages = append(messages, toolMsg)
		}
	}
}

// executeToolCall runs one requested call against the host and shapes
// the outcome as a tool message. Host-reported tool errors are passed
// back to the model as text; protocol failures abort the query.
func (a *Orchestrator) executeToolCall(ctx context.Context, logger *slog.Logger, call llm.ToolCall) (llm.Message, error) {
	args, err := call.Function.DecodeArguments()
	if err != nil {
		return llm.Message{}, err
	}

	logger.Info("executing tool call", "tool", call.Function.Name, "call_id", call.ID)
	result, err := a.client.CallTool(ctx, call.Function.Name, args)
	if err != nil {
		return llm.Message{}, fmt.Errorf("tool %s: %w", call.Function.Name, err)
	}

	content := result.Text
	if result.Kind == client.KindError {
		content = fmt.Sprintf("Tool error: %s", result.Text)
	}

	return llm.Message{
		Role:       "tool",
		ToolCallID: call.ID,
		Content:    content,
	}, nil
}

// toolDeclarations converts the host's advertised tools into function
// declarations. Schemas pass through opaquely so the declarations can
// never drift from what the host actually serves.
func (a *Orchestrator) toolDeclarations(ctx context.Context) ([]llm.Tool, error) {
	tools, err := a.client.Tools(ctx)
	if err != nil {
		return nil, err
	}

	declarations := make([]llm.Tool, 0, len(tools))
	for _, t := range tools {
		params, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("marshal schema for %s: %w", t.Name, err)
		}
		declarations = append(declarations, llm.NewFunctionTool(t.Name, t.Description, params))
	}
	return declarations, nil
}
