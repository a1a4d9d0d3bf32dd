package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"n":1}`)})
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"n":2}`)})

	first, err := mock.Generate(context.Background(), Request{System: "a"})
	require.NoError(t, err)
	second, err := mock.Generate(context.Background(), Request{System: "b"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"n":1}`, string(first.Content))
	assert.JSONEq(t, `{"n":2}`, string(second.Content))
	assert.Equal(t, "b", mock.Calls[1].System)

	_, err = mock.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"word":"su"}`)})

	_, err := mock.Generate(context.Background(), Request{Schema: wordSchema()})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}

func TestDisabled_NeverRetried(t *testing.T) {
	p := WithRetry(Disabled{}, DefaultRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "disabled", p.ModelID())
}
