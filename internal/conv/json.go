package conv

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Convert performs a best-effort conversion of the input value into the type
// pointed to by outPtr.
//
// When input is assignable to the destination element type it is copied
// directly, otherwise Convert falls back to a JSON marshal/unmarshal
// round-trip. A nil input leaves outPtrʼs value untouched.
func Convert(in any, outPtr any) error {
	if outPtr == nil {
		return fmt.Errorf("conv.Convert: outPtr cannot be nil")
	}
	v := reflect.ValueOf(outPtr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("conv.Convert: outPtr must be a non-nil pointer")
	}
	if in == nil {
		return nil
	}
	inVal := reflect.ValueOf(in)
	if inVal.Type().AssignableTo(v.Elem().Type()) {
		v.Elem().Set(inVal)
		return nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, outPtr)
}

// ConvertValue converts in into a new value of type t.
func ConvertValue(in any, t reflect.Type) (reflect.Value, error) {
	if in == nil {
		return reflect.Zero(t), nil
	}
	inVal := reflect.ValueOf(in)
	if inVal.Type().AssignableTo(t) {
		return inVal, nil
	}
	if inVal.Type().ConvertibleTo(t) && isNumeric(inVal.Kind()) && isNumeric(t.Kind()) {
		return inVal.Convert(t), nil
	}
	out := reflect.New(t)
	if err := Convert(in, out.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("convert %T to %v: %w", in, t, err)
	}
	return out.Elem(), nil
}

// ToMap converts an arbitrary input value into a map[string]interface{} using
// the same strategy as Convert.
func ToMap(in any) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := Convert(in, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Structured reports whether v is a container: map, slice, array or struct
// (or a pointer to one). Byte slices are treated as scalars.
func Structured(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Array:
		return true
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
