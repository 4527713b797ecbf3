package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func variantSchema() *Schema {
	return &Schema{
		Name: "test-variant",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt":  map[string]any{"type": "string"},
				"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
				"correct": map[string]any{"type": "string"},
				"subject": map[string]any{"type": "string", "enum": []string{"math", "chinese", "english"}},
			},
			"required": []string{"prompt", "options", "correct"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"prompt":"x²=4","options":["2","-2","±2","4"],"correct":"±2"}`, false},
		{"valid with enum", `{"prompt":"p","options":["a","b","c","d"],"correct":"a","subject":"math"}`, false},
		{"missing correct", `{"prompt":"p","options":["a","b","c","d"]}`, true},
		{"three options", `{"prompt":"p","options":["a","b","c"],"correct":"a"}`, true},
		{"unknown subject", `{"prompt":"p","options":["a","b","c","d"],"correct":"a","subject":"physics"}`, true},
		{"option not a string", `{"prompt":"p","options":["a","b","c",4],"correct":"a"}`, true},
		{"not JSON", `好的，题目如下`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(variantSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Errorf("error type = %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Errorf("validateResponse(nil) = %v, want nil", err)
	}
}

func TestCompileCachesByName(t *testing.T) {
	a, err := compile(variantSchema())
	if err != nil {
		t.Fatal(err)
	}
	b, err := compile(variantSchema())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("compile should reuse the schema compiled under the same name")
	}
	if _, err := compile(&Schema{Definition: map[string]any{"type": "object"}}); err == nil {
		t.Error("compile should reject an unnamed schema")
	}
}
