package conv

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct {
	OrderID string `json:"order_id"`
	Qty     int    `json:"qty,omitempty"`
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		name   string
		input  any
		expect order
	}{
		{name: "map to struct", input: map[string]interface{}{"order_id": "777", "qty": 2}, expect: order{OrderID: "777", Qty: 2}},
		{name: "assignable", input: order{OrderID: "1"}, expect: order{OrderID: "1"}},
		{name: "nil keeps zero", input: nil, expect: order{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var actual order
			require.NoError(t, Convert(tc.input, &actual))
			assert.EqualValues(t, tc.expect, actual)
		})
	}
	assert.Error(t, Convert(1, nil))
}

func TestConvertValue(t *testing.T) {
	v, err := ConvertValue(float64(3), reflect.TypeOf(0))
	require.NoError(t, err)
	assert.EqualValues(t, 3, v.Interface())

	v, err = ConvertValue(nil, reflect.TypeOf(""))
	require.NoError(t, err)
	assert.EqualValues(t, "", v.Interface())

	v, err = ConvertValue(map[string]interface{}{"order_id": "9"}, reflect.TypeOf(&order{}))
	require.NoError(t, err)
	assert.EqualValues(t, &order{OrderID: "9"}, v.Interface())
}

func TestStructured(t *testing.T) {
	assert.True(t, Structured(map[string]int{}))
	assert.True(t, Structured([]any{1}))
	assert.True(t, Structured([2]int{1, 2}))
	assert.True(t, Structured(&order{}))
	assert.False(t, Structured([]byte("x")))
	assert.False(t, Structured("x"))
	assert.False(t, Structured(nil))
}
