package llm

import (
	"context"
	"encoding/json"
)

// Provider produces structured JSON from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a JSON Schema the response must satisfy. Name doubles as the
// cache key for the compiled schema.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Disabled stands in when no provider is configured; every call fails with
// ErrNotConfigured.
type Disabled struct{}

func (Disabled) Generate(context.Context, Request) (*Response, error) {
	return nil, ErrNotConfigured
}

func (Disabled) ModelID() string { return "disabled" }
