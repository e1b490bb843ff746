//go:build cgo_sqlite

package sqliteexternal

import (
	"database/sql"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/mlourenco/extrafn/core/funcs"
)

const (
	// DriverName is the SQL driver name to use with database/sql.
	DriverName = "sqlite3_extrafn"

	// DriverType identifies this as the CGO implementation.
	DriverType = "cgo"

	// DriverPackage is the import path of the underlying driver.
	DriverPackage = "github.com/mattn/go-sqlite3"
)

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: registerCatalog,
	})
}

// registerCatalog installs every catalog function on a new connection.
// mattn registers per connection rather than per process, which is why this
// runs from the connect hook.
func registerCatalog(conn *sqlite3.SQLiteConn) error {
	for _, fn := range funcs.DefaultRegistry().All() {
		pure := fn.Name() != "uuid"

		if agg, ok := fn.(funcs.AggregateFunction); ok {
			constructor := func() *aggregator {
				return &aggregator{inner: agg.NewInstance()}
			}
			if err := conn.RegisterAggregator(fn.Name(), constructor, pure); err != nil {
				return fmt.Errorf("register aggregate %s: %w", fn.Name(), err)
			}
			continue
		}

		scalar := fn
		impl := func(args ...any) (any, error) {
			result, err := scalar.Call(toValues(args))
			if err != nil {
				return nil, err
			}
			return fromValue(result), nil
		}
		if err := conn.RegisterFunc(fn.Name(), impl, pure); err != nil {
			return fmt.Errorf("register function %s: %w", fn.Name(), err)
		}
	}
	return nil
}

// aggregator adapts a catalog aggregate to the Step/Done shape mattn drives
// through reflection.
type aggregator struct {
	inner funcs.AggregateFunction
}

func (a *aggregator) Step(arg any) error {
	return a.inner.Step(toValues([]any{arg}))
}

func (a *aggregator) Done() (any, error) {
	result, err := a.inner.Final()
	if err != nil {
		return nil, err
	}
	return fromValue(result), nil
}

// toValues converts the reflected argument list into catalog values.
func toValues(args []any) []funcs.Value {
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
		case bool:
			if x {
				out[i] = funcs.NewIntValue(1)
			} else {
				out[i] = funcs.NewIntValue(0)
			}
		default:
			out[i] = funcs.NewTextValue(fmt.Sprint(x))
		}
	}
	return out
}

// fromValue converts a catalog value into a type mattn knows how to bind.
func fromValue(v funcs.Value) any {
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
