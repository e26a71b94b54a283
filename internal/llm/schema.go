package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildResultJSONSchema returns the parse-result contract as a JSON-Schema
// (draft 2020-12 subset) generic map. It is deliberately tolerant where
// completion backends are known to drift: list-valued fields also accept a
// single object or a delimiter-joined string, scalars also accept null, and
// unknown extra keys are ignored. The flex decoders in the entity package
// absorb the same shapes after validation.
func BuildResultJSONSchema() map[string]any {
	linkProps := map[string]any{
		"linkedin":       nullableString(),
		"github":         nullableString(),
		"facebook":       nullableString(),
		"portfolio_demo": nullableString(),
	}
	experience := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"company":    nullableString(),
			"title":      nullableString(),
			"start_date": nullableScalar(),
			"end_date":   nullableScalar(),
			"highlights": stringsOrString(),
			"skills":     stringsOrString(),
		},
	}
	education := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"school":     nullableString(),
			"degree":     nullableString(),
			"major":      nullableString(),
			"gpa":        nullableScalar(),
			"start_date": nullableScalar(),
			"end_date":   nullableScalar(),
		},
	}
	project := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":         nullableString(),
			"description":  nullableString(),
			"start_date":   nullableScalar(),
			"end_date":     nullableScalar(),
			"links":        stringsOrString(),
			"technologies": stringsOrString(),
		},
	}
	candidate := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"full_name": nullableString(),
			"email":     nullableString(),
			"phone":     nullableScalar(),
			"location":  nullableString(),
			"headline":  nullableString(),
			"summary":   nullableString(),
			"links": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "object", "properties": linkProps},
					map[string]any{"type": "null"},
				},
			},
			"skills":        stringsOrString(),
			"languages":     stringsOrString(),
			"quality_score": map[string]any{"type": []any{"number", "null"}, "minimum": 0.0, "maximum": 1.0},
		},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"candidate":      candidate,
			"experiences":    listOrOne(experience),
			"education":      listOrOne(education),
			"certifications": stringsOrString(),
			"projects":       listOrOne(project),
			"skills":         stringsOrString(),
		},
		"required": []string{"candidate"},
	}
}

func nullableString() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}

// nullableScalar covers fields like gpa and phone that models sometimes emit
// as bare numbers.
func nullableScalar() map[string]any {
	return map[string]any{"type": []any{"string", "number", "null"}}
}

func stringsOrString() map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "array"},
			map[string]any{"type": "string"},
			map[string]any{"type": "null"},
		},
	}
}

func listOrOne(item map[string]any) map[string]any {
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "array", "items": item},
			item,
			map[string]any{"type": "null"},
		},
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
