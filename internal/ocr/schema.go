package ocr

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// TokenPayload is the wire shape the OCR collaborator posts to the service:
// an ordered-or-unordered token sequence. An empty tokens array is valid
// input (it produces the no-text failure downstream).
type TokenPayload struct {
	Tokens []TextToken `json:"tokens"`
}

// BuildTokenPayloadSchema returns the JSON-Schema (draft 2020-12 subset) for
// incoming token payloads as a generic map, compiled once at startup.
func BuildTokenPayloadSchema() map[string]any {
	point := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"x": map[string]any{"type": "number"},
			"y": map[string]any{"type": "number"},
		},
		"required": []string{"x", "y"},
	}
	token := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
			"bounding_box": map[string]any{
				"type":     "array",
				"items":    point,
				"minItems": 4,
				"maxItems": 4,
			},
			"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"text", "bounding_box", "confidence"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"tokens": map[string]any{"type": "array", "items": token},
		},
		"required": []string{"tokens"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// DecodeTokenPayload validates raw JSON against the payload schema and
// decodes it into a TokenPayload.
func DecodeTokenPayload(schemaMap map[string]any, raw []byte) (TokenPayload, error) {
	var p TokenPayload
	if err := ValidateJSONAgainstSchema(schemaMap, raw); err != nil {
		return p, err
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("decode payload: %w", err)
	}
	return p, nil
}
