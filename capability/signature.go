package capability

import (
	"context"
	"fmt"
	"reflect"

	"github.com/viant/agentbridge/bridge/async"
)

type outShape int

const (
	outNone outShape = iota
	outValue
	outValueError
	outError
	outResult
	outFuture
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
	resultType  = reflect.TypeFor[async.Result]()
	futureType  = reflect.TypeFor[*async.Future]()
)

// signature describes a declared method without its receiver.
type signature struct {
	context  bool
	in       []reflect.Type
	variadic bool
	out      outShape
}

// analyze accepts an optional leading context.Context and one of the result
// shapes (), (T), (T, error), (error), (async.Result) or (*async.Future).
func analyze(fn reflect.Type) (*signature, error) {
	sig := &signature{variadic: fn.IsVariadic()}
	start := 1
	if fn.NumIn() > 1 && fn.In(1) == contextType {
		sig.context = true
		start = 2
	}
	for i := start; i < fn.NumIn(); i++ {
		sig.in = append(sig.in, fn.In(i))
	}
	switch fn.NumOut() {
	case 0:
		sig.out = outNone
	case 1:
		switch fn.Out(0) {
		case errorType:
			sig.out = outError
		case resultType:
			sig.out = outResult
		case futureType:
			sig.out = outFuture
		default:
			sig.out = outValue
		}
	case 2:
		if fn.Out(1) != errorType {
			return nil, fmt.Errorf("second result must be error, got %v", fn.Out(1))
		}
		sig.out = outValueError
	default:
		return nil, fmt.Errorf("unsupported result count %d", fn.NumOut())
	}
	return sig, nil
}

// result normalizes call outputs. Values that are themselves a Result or a
// Future are unwrapped into the same shape.
func (s *signature) result(out []reflect.Value) async.Result {
	switch s.out {
	case outNone:
		return async.Ready(nil)
	case outError:
		if err, _ := out[0].Interface().(error); err != nil {
			return async.Failed(err)
		}
		return async.Ready(nil)
	case outResult:
		return out[0].Interface().(async.Result)
	case outFuture:
		if out[0].IsNil() {
			return async.Ready(nil)
		}
		return async.Pending(out[0].Interface().(*async.Future))
	case outValueError:
		if err, _ := out[1].Interface().(error); err != nil {
			return async.Failed(err)
		}
	}
	return normalize(out[0].Interface())
}

func normalize(value any) async.Result {
	switch actual := value.(type) {
	case async.Result:
		return actual
	case *async.Future:
		if actual == nil {
			return async.Ready(nil)
		}
		return async.Pending(actual)
	}
	return async.Ready(value)
}
