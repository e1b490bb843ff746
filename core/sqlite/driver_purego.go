//go:build !cgo_sqlite

package sqlite

import (
	"database/sql/driver"
	"fmt"

	sqlite3 "modernc.org/sqlite"

	"github.com/mlourenco/extrafn/core/funcs"
)

const (
	driverName    = "sqlite"
	driverType    = "purego"
	driverPackage = "modernc.org/sqlite"
)

func init() {
	for _, fn := range funcs.DefaultRegistry().All() {
		registerFunc(fn)
	}
}

// registerFunc wires one catalog function into the modernc driver. uuid() is
// the only non-deterministic function in the catalog.
func registerFunc(fn funcs.Function) {
	impl := &sqlite3.FunctionImpl{
		NArgs:         int32(fn.NumArgs()),
		Deterministic: fn.Name() != "uuid",
	}

	if agg, ok := fn.(funcs.AggregateFunction); ok {
		impl.MakeAggregate = func(ctx sqlite3.FunctionContext) (sqlite3.AggregateFunction, error) {
			return &aggAdapter{inner: agg.NewInstance()}, nil
		}
	} else {
		impl.Scalar = func(ctx *sqlite3.FunctionContext, args []driver.Value) (driver.Value, error) {
			result, err := fn.Call(toValues(args))
			if err != nil {
				return nil, err
			}
			return fromValue(result), nil
		}
	}

	sqlite3.MustRegisterFunction(fn.Name(), impl)
}

// aggAdapter bridges the catalog's aggregate shape onto the driver's. The
// driver fetches the result through WindowValue followed by Final, so
// WindowValue performs the one-shot finalize and Final has nothing left to
// do.
type aggAdapter struct {
	inner funcs.AggregateFunction
}

func (a *aggAdapter) Step(ctx *sqlite3.FunctionContext, rowArgs []driver.Value) error {
	return a.inner.Step(toValues(rowArgs))
}

func (a *aggAdapter) WindowInverse(ctx *sqlite3.FunctionContext, rowArgs []driver.Value) error {
	return fmt.Errorf("%s() does not support window frames", a.inner.Name())
}

func (a *aggAdapter) WindowValue(ctx *sqlite3.FunctionContext) (driver.Value, error) {
	result, err := a.inner.Final()
	if err != nil {
		return nil, err
	}
	return fromValue(result), nil
}

func (a *aggAdapter) Final(ctx *sqlite3.FunctionContext) {}

// toValues converts driver cells into catalog values.
func toValues(args []driver.Value) []funcs.Value {
	out := make([]funcs.Value, len(args))
	for i, arg := range args {
		switch x := arg.(type) {
		case nil:
			out[i] = funcs.NewNullValue()
		case int64:
			out[i] = funcs.NewIntValue(x)
		case float64:
			out[i] = funcs.NewFloatValue(x)
		case string:
			out[i] = funcs.NewTextValue(x)
		case []byte:
			out[i] = funcs.NewBlobValue(x)
		default:
			out[i] = funcs.NewTextValue(fmt.Sprint(x))
		}
	}
	return out
}

// fromValue converts a catalog value back into a driver cell.
func fromValue(v funcs.Value) driver.Value {
	switch v.Type() {
	case funcs.TypeNull:
		return nil
	case funcs.TypeInteger:
		return v.AsInt64()
	case funcs.TypeFloat:
		return v.AsFloat64()
	case funcs.TypeBlob:
		return v.AsBlob()
	default:
		return v.AsString()
	}
}
