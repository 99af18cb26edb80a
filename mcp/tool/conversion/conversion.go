package conversion

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/viant/fluxor/model/types"
	schema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/x"
)

var (
	anyType  = reflect.TypeOf(new(interface{})).Elem()
	timeType = reflect.TypeOf(time.Time{})
)

// BuildSchema derives tool metadata from a fluxor action signature. Input and
// output must be struct types (or pointers to them).
func BuildSchema(sig *types.Signature) (schema.Tool, error) {
	var inputSchema schema.ToolInputSchema
	if err := inputSchema.Load(reflect.New(structType(sig.Input)).Interface()); err != nil {
		return schema.Tool{}, fmt.Errorf("failed to build input schema for %s: %w", sig.Name, err)
	}
	if inputSchema.Type == "" {
		inputSchema.Type = "object"
	}
	props, required := schema.StructToProperties(structType(sig.Output))
	outputSchema := &schema.ToolOutputSchema{Properties: props, Required: required, Type: "object"}
	desc := sig.Description
	return schema.Tool{Name: sig.Name, Description: &desc, InputSchema: inputSchema, OutputSchema: outputSchema}, nil
}

func structType(t reflect.Type) reflect.Type {
	if t == nil {
		return reflect.StructOf(nil)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return reflect.StructOf(nil)
	}
	return t
}

// InputSchema converts a JSON object schema record into a tool input schema.
func InputSchema(record map[string]any) (schema.ToolInputSchema, error) {
	ret := schema.ToolInputSchema{Type: "object", Properties: map[string]map[string]interface{}{}}
	if raw, ok := record["properties"]; ok && raw != nil {
		properties, ok := raw.(map[string]any)
		if !ok {
			return ret, fmt.Errorf("properties: expected object, got %T", raw)
		}
		for name, def := range properties {
			property, ok := def.(map[string]any)
			if !ok {
				return ret, fmt.Errorf("property %q: expected object, got %T", name, def)
			}
			ret.Properties[name] = property
		}
	}
	ret.Required = stringList(record["required"])
	return ret, nil
}

func stringList(raw any) []string {
	switch actual := raw.(type) {
	case []string:
		return actual
	case []any:
		ret := make([]string, 0, len(actual))
		for _, item := range actual {
			if s, ok := item.(string); ok {
				ret = append(ret, s)
			}
		}
		return ret
	}
	return nil
}

var typeRegistry = x.NewRegistry()

// Registry returns the registry of generated types.
func Registry() *x.Registry {
	return typeRegistry
}

// RegisterType registers a generated type.
func RegisterType(t reflect.Type, options ...x.Option) {
	typeRegistry.Register(x.NewType(t, options...))
}

// TypeFromInputSchema generates a struct type for a tool input schema. An
// input schema without properties yields an empty struct, never a map, so the
// type can be converted back with StructToProperties.
func TypeFromInputSchema(inputSchema schema.ToolInputSchema) (reflect.Type, error) {
	return typeFromProperties(inputSchema.Properties, inputSchema.Required)
}

// TypeFromOutputSchema generates a struct type for a tool output schema.
func TypeFromOutputSchema(outputSchema schema.ToolOutputSchema) (reflect.Type, error) {
	return typeFromProperties(outputSchema.Properties, outputSchema.Required)
}

func typeFromProperties(props map[string]map[string]interface{}, required []string) (reflect.Type, error) {
	if len(props) == 0 {
		return reflect.StructOf(nil), nil
	}
	fields, err := buildFields(props, required)
	if err != nil {
		return nil, err
	}
	t := reflect.StructOf(fields)
	RegisterType(t)
	return t, nil
}

func buildFields(props map[string]map[string]interface{}, required []string) ([]reflect.StructField, error) {
	keys := make([]string, 0, len(props))
	for name := range props {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	requiredSet := make(map[string]bool, len(required))
	for _, name := range required {
		requiredSet[name] = true
	}
	fields := make([]reflect.StructField, 0, len(keys))
	used := make(map[string]bool, len(keys))
	for _, name := range keys {
		def := props[name]
		fieldType, err := goTypeFromDef(def)
		if err != nil {
			return nil, fmt.Errorf("failed to determine type for field %q: %w", name, err)
		}
		goName := uniqueName(fieldName(name), used)
		fields = append(fields, reflect.StructField{
			Name: goName,
			Type: fieldType,
			Tag:  fieldTag(name, def, requiredSet[name]),
		})
	}
	return fields, nil
}

// fieldTag carries json, description and choice (one per enum value) tags.
func fieldTag(name string, def map[string]interface{}, required bool) reflect.StructTag {
	jsonName := name
	if !required {
		jsonName += ",omitempty"
	}
	parts := []string{fmt.Sprintf("json:%q", jsonName)}
	if description, ok := def["description"].(string); ok && description != "" {
		parts = append(parts, fmt.Sprintf("description:%q", description))
	}
	if enum, ok := def["enum"].([]interface{}); ok {
		for _, choice := range enum {
			parts = append(parts, fmt.Sprintf("choice:%q", fmt.Sprint(choice)))
		}
	}
	return reflect.StructTag(strings.Join(parts, " "))
}

// fieldName turns a property name into an exported Go identifier.
func fieldName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	ret := b.String()
	if ret == "" || !unicode.IsLetter([]rune(ret)[0]) {
		ret = "F" + ret
	}
	runes := []rune(ret)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s%d", name, i)
	}
	used[candidate] = true
	return candidate
}

func goTypeFromDef(def map[string]interface{}) (reflect.Type, error) {
	var typeName string
	switch actual := def["type"].(type) {
	case string:
		typeName = actual
	case []interface{}:
		for _, item := range actual {
			if s, ok := item.(string); ok && s != "null" {
				typeName = s
				break
			}
		}
	}
	switch typeName {
	case "string":
		if format, ok := def["format"].(string); ok && (format == "date-time" || format == "date") {
			return timeType, nil
		}
		return reflect.TypeOf(""), nil
	case "integer":
		return reflect.TypeOf(int64(0)), nil
	case "number":
		return reflect.TypeOf(float64(0)), nil
	case "boolean":
		return reflect.TypeOf(true), nil
	case "object":
		nested := map[string]map[string]interface{}{}
		if raw, ok := def["properties"].(map[string]interface{}); ok {
			for k, v := range raw {
				if m, ok := v.(map[string]interface{}); ok {
					nested[k] = m
				}
			}
		}
		if len(nested) == 0 {
			return reflect.TypeOf(map[string]interface{}{}), nil
		}
		fields, err := buildFields(nested, stringList(def["required"]))
		if err != nil {
			return nil, err
		}
		nestedType := reflect.StructOf(fields)
		RegisterType(nestedType)
		return nestedType, nil
	case "array":
		if raw, ok := def["items"].(map[string]interface{}); ok {
			itemType, err := goTypeFromDef(raw)
			if err != nil {
				return nil, err
			}
			return reflect.SliceOf(itemType), nil
		}
		return reflect.SliceOf(anyType), nil
	}
	return anyType, nil
}

// ToStruct builds a struct type from a JSON schema and decodes payload into
// a new instance, returned as a pointer.
func ToStruct(schemaJSON, payloadJSON []byte) (any, error) {
	var inputSchema schema.ToolInputSchema
	if err := json.Unmarshal(schemaJSON, &inputSchema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema: %w", err)
	}
	fields, err := buildFields(inputSchema.Properties, inputSchema.Required)
	if err != nil {
		return nil, err
	}
	structType := reflect.StructOf(fields)
	RegisterType(structType)
	instance := reflect.New(structType)
	if err := json.Unmarshal(payloadJSON, instance.Interface()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return instance.Interface(), nil
}

// ToJSON marshals a value produced by ToStruct.
func ToJSON(val any) ([]byte, error) {
	if val == nil {
		return nil, fmt.Errorf("invalid value: nil")
	}
	return json.Marshal(val)
}
