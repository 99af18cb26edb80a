package bridge

import (
	"fmt"
	"reflect"

	"github.com/viant/agentbridge/internal/conv"
)

// Encoder builds the remote runtime's native object and array values. Entries
// and items are already encoded.
type Encoder interface {
	EncodeObject(entries map[string]any) any
	EncodeArray(items []any) any
}

// Marshaller converts values crossing the boundary. Without an Encoder (no
// remote runtime present) ToRemote is the identity function.
type Marshaller struct {
	encoder Encoder
}

// NewMarshaller returns a marshaller bound to encoder; nil yields identity
// marshalling.
func NewMarshaller(encoder Encoder) *Marshaller {
	return &Marshaller{encoder: encoder}
}

// Available reports whether a remote runtime backs this marshaller.
func (m *Marshaller) Available() bool { return m != nil && m.encoder != nil }

// ToRemote recursively converts maps, slices, arrays and structs into remote
// objects and arrays. Scalars, functions and remote values pass through. The
// input is never mutated.
func (m *Marshaller) ToRemote(value any) any {
	if !m.Available() {
		return value
	}
	return m.encode(value)
}

// ToLocal materializes remote values that support it and passes everything
// else through unchanged.
func (m *Marshaller) ToLocal(value any) any {
	if materializer, ok := value.(Materializer); ok {
		return materializer.Materialize()
	}
	return value
}

func (m *Marshaller) encode(value any) any {
	switch actual := value.(type) {
	case nil, string, bool, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return value
	case Materializer, Callback, Function:
		return value
	case map[string]any:
		entries := make(map[string]any, len(actual))
		for k, v := range actual {
			entries[k] = m.encode(v)
		}
		return m.encoder.EncodeObject(entries)
	case []any:
		items := make([]any, len(actual))
		for i, v := range actual {
			items[i] = m.encode(v)
		}
		return m.encoder.EncodeArray(items)
	}
	return m.encodeValue(reflect.ValueOf(value), value)
}

func (m *Marshaller) encodeValue(rv reflect.Value, value any) any {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return m.encodeStruct(value)
		}
		return m.encode(rv.Elem().Interface())
	case reflect.Map:
		entries := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := iter.Key()
			var name string
			if key.Kind() == reflect.String {
				name = key.String()
			} else {
				name = fmt.Sprint(key.Interface())
			}
			entries[name] = m.encode(iter.Value().Interface())
		}
		return m.encoder.EncodeObject(entries)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		items := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = m.encode(rv.Index(i).Interface())
		}
		return m.encoder.EncodeArray(items)
	case reflect.Struct:
		return m.encodeStruct(value)
	case reflect.Func, reflect.Chan:
		return value
	}
	return value
}

// encodeStruct goes through the struct's JSON shape so json tags decide the
// remote field names.
func (m *Marshaller) encodeStruct(value any) any {
	fields, err := conv.ToMap(value)
	if err != nil {
		return value
	}
	entries := make(map[string]any, len(fields))
	for k, v := range fields {
		entries[k] = m.encode(v)
	}
	return m.encoder.EncodeObject(entries)
}
