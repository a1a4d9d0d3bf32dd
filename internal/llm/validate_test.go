package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordSchema() *Schema {
	return &Schema{
		Name: "test-word",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"word":    map[string]any{"type": "string"},
				"mastery": map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
				"kind":    map[string]any{"type": "string", "enum": []string{"noun", "verb"}},
			},
			"required": []string{"word", "mastery"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: `{"word":"kedi","mastery":2,"kind":"noun"}`},
		{name: "optional omitted", raw: `{"word":"kedi","mastery":0}`},
		{name: "missing required", raw: `{"word":"kedi"}`, wantErr: true},
		{name: "wrong type", raw: `{"word":"kedi","mastery":"two"}`, wantErr: true},
		{name: "out of range", raw: `{"word":"kedi","mastery":9}`, wantErr: true},
		{name: "bad enum", raw: `{"word":"kedi","mastery":1,"kind":"adverb"}`, wantErr: true},
		{name: "malformed", raw: `{word}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(wordSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`not even json`)))
}
