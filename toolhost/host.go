package toolhost

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/conv"
)

// Handler handles one tool call with its arguments record.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Host accepts tool registrations.
type Host interface {
	Tool(ctx context.Context, name string, handler Handler) error
	ToolWithSchema(ctx context.Context, name string, schema any, handler Handler) error
}

// Describer is implemented by hosts that keep tool descriptions. The
// registrar calls DescribeTool before registering the tool.
type Describer interface {
	DescribeTool(name, description string)
}

// InputSchema normalizes a declared schema into a JSON object schema. A
// shorthand record such as {"order_id": "string"} becomes an object schema
// with one required property per key; a nil schema becomes an empty object
// schema.
func InputSchema(schema any) (map[string]any, error) {
	if materializer, ok := schema.(bridge.Materializer); ok {
		schema = materializer.Materialize()
	}
	if schema == nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}, nil
	}
	var record map[string]any
	switch actual := schema.(type) {
	case map[string]any:
		record = actual
	case []byte:
		if err := json.Unmarshal(actual, &record); err != nil {
			return nil, fmt.Errorf("invalid schema: %w", err)
		}
	case json.RawMessage:
		if err := json.Unmarshal(actual, &record); err != nil {
			return nil, fmt.Errorf("invalid schema: %w", err)
		}
	default:
		var err error
		if record, err = conv.ToMap(schema); err != nil {
			return nil, fmt.Errorf("invalid schema %T: %w", schema, err)
		}
	}
	if _, ok := record["properties"]; ok || record["type"] == "object" {
		ret := make(map[string]any, len(record)+1)
		for k, v := range record {
			ret[k] = v
		}
		ret["type"] = "object"
		if _, ok := ret["properties"]; !ok {
			ret["properties"] = map[string]any{}
		}
		return ret, nil
	}
	properties := make(map[string]any, len(record))
	required := make([]string, 0, len(record))
	for name, def := range record {
		switch actual := def.(type) {
		case string:
			properties[name] = map[string]any{"type": actual}
		case map[string]any:
			properties[name] = actual
		default:
			return nil, fmt.Errorf("invalid schema: property %q has unsupported definition %T", name, def)
		}
		required = append(required, name)
	}
	sort.Strings(required)
	return map[string]any{"type": "object", "properties": properties, "required": required}, nil
}

// Text renders a tool result as text: strings pass through, everything else
// is JSON encoded.
func Text(value any) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return actual
	case []byte:
		return string(actual)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(data)
}
