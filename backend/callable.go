package backend

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/codewrap"
	"github.com/wippyai/codewrap/errors"
	"github.com/wippyai/codewrap/loader"
)

// encodeArgs checks arity and lowers Go scalars onto the wasm stack in the
// caller-input order. Array arguments cannot be marshaled from the host;
// routines using them must go through a backend that owns its marshaling.
func encodeArgs(inputs []codewrap.Argument, args []any) ([]uint64, error) {
	if len(args) != len(inputs) {
		return nil, errors.Call(fmt.Sprintf("routine takes %d arguments, got %d", len(inputs), len(args)), nil)
	}

	raw := make([]uint64, len(args))
	for i, arg := range args {
		in := inputs[i]
		if in.IsArray() {
			return nil, errors.Unsupported(errors.PhaseCall, "array argument "+in.Name)
		}
		switch v := arg.(type) {
		case float64:
			raw[i] = encodeScalar(in.Datatype, v, int64(v))
		case int:
			raw[i] = encodeScalar(in.Datatype, float64(v), int64(v))
		case int64:
			raw[i] = encodeScalar(in.Datatype, float64(v), v)
		default:
			return nil, errors.Call(fmt.Sprintf("argument %s: unsupported type %T", in.Name, arg), nil)
		}
	}
	return raw, nil
}

func encodeScalar(dt codewrap.Datatype, f float64, i int64) uint64 {
	if dt == codewrap.Int64 {
		return api.EncodeI64(i)
	}
	return api.EncodeF64(f)
}

// shape applies the return-shaping rule: nil for an empty composite, the
// bare value for a single result, the ordered slice otherwise.
func shape(vals []float64) any {
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	default:
		return vals
	}
}

// bufferCallable invokes a cc wrapper export. The wrapper returns a
// pointer to a static float64 buffer holding the explicit results followed
// by the produced arguments in declaration order.
type bufferCallable struct {
	mod    *loader.Module
	fn     api.Function
	inputs []codewrap.Argument
	width  int
}

func (c *bufferCallable) Call(ctx context.Context, args ...any) (any, error) {
	raw, err := encodeArgs(c.inputs, args)
	if err != nil {
		return nil, err
	}

	results, err := c.fn.Call(ctx, raw...)
	if err != nil {
		return nil, errors.Call("invoke wrapped routine", err)
	}
	if c.width == 0 {
		return nil, nil
	}
	if len(results) == 0 {
		return nil, errors.Call("wrapper returned no result pointer", nil)
	}

	vals, err := c.mod.ReadFloat64s(uint32(results[0]), c.width)
	if err != nil {
		return nil, errors.Call("read result composite", err)
	}
	return shape(vals), nil
}

// directCallable invokes an export whose marshaling the external frontend
// owns: results come back on the wasm stack rather than through a buffer.
// slots carries the declared datatype of each result position.
type directCallable struct {
	fn     api.Function
	inputs []codewrap.Argument
	slots  []codewrap.Datatype
}

func (c *directCallable) Call(ctx context.Context, args ...any) (any, error) {
	raw, err := encodeArgs(c.inputs, args)
	if err != nil {
		return nil, err
	}

	results, err := c.fn.Call(ctx, raw...)
	if err != nil {
		return nil, errors.Call("invoke wrapped routine", err)
	}
	if len(results) < len(c.slots) {
		return nil, errors.Call(fmt.Sprintf("artifact returned %d values, want %d", len(results), len(c.slots)), nil)
	}

	vals := make([]float64, len(c.slots))
	for i, dt := range c.slots {
		if dt == codewrap.Int64 {
			vals[i] = float64(int64(results[i]))
		} else {
			vals[i] = api.DecodeF64(results[i])
		}
	}
	return shape(vals), nil
}
