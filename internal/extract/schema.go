package extract

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ImageResponseSchema returns the JSON-Schema (draft 2020-12 subset) the
// image extraction service's response must satisfy before we trust it.
func ImageResponseSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"narrative":            map[string]any{"type": "string"},
			"structured_data":      map[string]any{"type": "object"},
			"suggested_entry_type": map[string]any{"type": "string"},
			"suggested_tags":       tagListProp(),
		},
		"required": []string{"narrative"},
	}
}

// DocumentResponseSchema returns the schema for the document extraction
// service's response.
func DocumentResponseSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"extracted_text":     map[string]any{"type": "string"},
			"detected_file_type": map[string]any{"type": "string"},
			"suggested_tags":     tagListProp(),
		},
		"required": []string{"extracted_text"},
	}
}

func tagListProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
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

// DropUnknownFields removes keys outside the schema's property set so a
// response with extra fields can still validate strictly. Returns the
// cleaned document and the dropped key names.
func DropUnknownFields(schemaMap map[string]any, data []byte) ([]byte, []string, error) {
	props, _ := schemaMap["properties"].(map[string]any)
	if props == nil {
		return data, nil, nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	var dropped []string
	for k := range m {
		if _, ok := props[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k)
		}
	}

	cleaned, err := json.Marshal(m)
	if err != nil {
		return nil, nil, fmt.Errorf("sanitize: encode: %w", err)
	}
	return cleaned, dropped, nil
}

// decodeValidated runs the strict-then-lenient validation the extraction
// adapters share: validate as-is, otherwise drop unknown keys and retry.
func decodeValidated(schemaMap map[string]any, raw []byte, out any) ([]string, error) {
	var dropped []string
	if err := ValidateJSONAgainstSchema(schemaMap, raw); err != nil {
		cleaned, d, sErr := DropUnknownFields(schemaMap, raw)
		if sErr != nil {
			return nil, err
		}
		if vErr := ValidateJSONAgainstSchema(schemaMap, cleaned); vErr != nil {
			return nil, err
		}
		raw, dropped = cleaned, d
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return dropped, nil
}
