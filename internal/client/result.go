package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Kind discriminates what a Result carries.
type Kind string

const (
	// KindText is plain or JSON text content.
	KindText Kind = "text"
	// KindStructured is a structured payload alongside its text rendering.
	KindStructured Kind = "structured"
	// KindError is a tool-level failure reported by the host.
	KindError Kind = "error"
)

// Result is the outcome of a tool call or resource read. The Kind field
// is the discriminator; callers switch on it rather than probing fields.
type Result struct {
	Kind       Kind
	Text       string
	Structured any
}

// Decode unmarshals the text payload into v. Most host responses are
// JSON documents rendered as text content.
func (r Result) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Text), v); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

func resultFromCall(res *mcp.CallToolResult) Result {
	text := joinContent(res.Content)
	if res.IsError {
		return Result{Kind: KindError, Text: text}
	}
	if res.StructuredContent != nil {
		return Result{Kind: KindStructured, Text: text, Structured: res.StructuredContent}
	}
	return Result{Kind: KindText, Text: text}
}

func resultFromRead(res *mcp.ReadResourceResult) Result {
	parts := make([]string, 0, len(res.Contents))
	for _, c := range res.Contents {
		parts = append(parts, c.Text)
	}
	return Result{Kind: KindText, Text: strings.Join(parts, "\n")}
}

// joinContent flattens content blocks into a single string. Non-text
// blocks are represented as inline markers.
func joinContent(blocks []mcp.Content) string {
	var parts []string
	for _, b := range blocks {
		if c, ok := b.(*mcp.TextContent); ok {
			parts = append(parts, c.Text)
			continue
		}
		parts = append(parts, fmt.Sprintf("[%T]", b))
	}
	return strings.Join(parts, "\n")
}
