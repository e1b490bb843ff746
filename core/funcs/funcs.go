// Package funcs implements the extension SQL function catalog.
package funcs

import (
	"fmt"
	"strconv"
	"strings"

	xerrors "github.com/mlourenco/extrafn/core/errors"
)

// Value represents a SQL value with its type.
type Value interface {
	// Type returns the type of the value
	Type() ValueType

	// AsInt64 returns the value as int64
	AsInt64() int64

	// AsFloat64 returns the value as float64
	AsFloat64() float64

	// AsString returns the value as string
	AsString() string

	// AsBlob returns the value as byte slice
	AsBlob() []byte

	// IsNull returns true if the value is NULL
	IsNull() bool

	// Bytes returns the number of bytes in the value
	Bytes() int
}

// ValueType represents SQL value types.
type ValueType int

const (
	TypeNull ValueType = iota
	TypeInteger
	TypeFloat
	TypeText
	TypeBlob
)

// String returns the string representation of the type
func (t ValueType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "real"
	case TypeText:
		return "text"
	case TypeBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Function is the interface for all SQL functions.
type Function interface {
	// Name returns the function name
	Name() string

	// NumArgs returns the number of arguments (-1 for variadic)
	NumArgs() int

	// Call executes the function with the given arguments
	Call(args []Value) (Value, error)
}

// AggregateFunction is the interface for aggregate SQL functions. Each
// GROUP BY bucket must step and finalize its own instance; NewInstance
// returns a fresh accumulator for that purpose. Final is one-shot: it
// consumes the accumulated state and resets the instance.
type AggregateFunction interface {
	Function

	// Step folds one row into the accumulator
	Step(args []Value) error

	// Final returns the aggregate result and resets the accumulator
	Final() (Value, error)

	// Reset discards the accumulated state
	Reset()

	// NewInstance returns a fresh accumulator with no shared state
	NewInstance() AggregateFunction
}

// ScalarFunc is a simple scalar function implementation.
type ScalarFunc struct {
	name    string
	numArgs int
	fn      func(args []Value) (Value, error)
}

// NewScalarFunc creates a new scalar function.
func NewScalarFunc(name string, numArgs int, fn func(args []Value) (Value, error)) *ScalarFunc {
	return &ScalarFunc{
		name:    name,
		numArgs: numArgs,
		fn:      fn,
	}
}

func (f *ScalarFunc) Name() string {
	return f.name
}

func (f *ScalarFunc) NumArgs() int {
	return f.numArgs
}

func (f *ScalarFunc) Call(args []Value) (Value, error) {
	if f.numArgs >= 0 && len(args) != f.numArgs {
		return nil, &xerrors.ArityError{Func: f.name, Want: f.numArgs, Got: len(args)}
	}
	return f.fn(args)
}

// SimpleValue is a basic implementation of the Value interface.
type SimpleValue struct {
	typ    ValueType
	intVal int64
	fltVal float64
	strVal string
	blbVal []byte
}

// NewNullValue creates a NULL value
func NewNullValue() Value {
	return &SimpleValue{typ: TypeNull}
}

// NewIntValue creates an integer value
func NewIntValue(v int64) Value {
	return &SimpleValue{typ: TypeInteger, intVal: v}
}

// NewFloatValue creates a float value
func NewFloatValue(v float64) Value {
	return &SimpleValue{typ: TypeFloat, fltVal: v}
}

// NewTextValue creates a text value
func NewTextValue(v string) Value {
	return &SimpleValue{typ: TypeText, strVal: v}
}

// NewBlobValue creates a blob value
func NewBlobValue(v []byte) Value {
	return &SimpleValue{typ: TypeBlob, blbVal: v}
}

func (v *SimpleValue) Type() ValueType {
	return v.typ
}

func (v *SimpleValue) AsInt64() int64 {
	switch v.typ {
	case TypeInteger:
		return v.intVal
	case TypeFloat:
		return int64(v.fltVal)
	case TypeText:
		i, f, t := parseNumeric(v.strVal)
		if t == TypeFloat {
			return int64(f)
		}
		return i
	default:
		return 0
	}
}

func (v *SimpleValue) AsFloat64() float64 {
	switch v.typ {
	case TypeFloat:
		return v.fltVal
	case TypeInteger:
		return float64(v.intVal)
	case TypeText:
		i, f, t := parseNumeric(v.strVal)
		if t == TypeInteger {
			return float64(i)
		}
		return f
	default:
		return 0.0
	}
}

func (v *SimpleValue) AsString() string {
	switch v.typ {
	case TypeText:
		return v.strVal
	case TypeInteger:
		return strconv.FormatInt(v.intVal, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.fltVal, 'g', -1, 64)
	case TypeBlob:
		return string(v.blbVal)
	default:
		return ""
	}
}

func (v *SimpleValue) AsBlob() []byte {
	switch v.typ {
	case TypeBlob:
		return v.blbVal
	case TypeText:
		return []byte(v.strVal)
	default:
		return nil
	}
}

func (v *SimpleValue) IsNull() bool {
	return v.typ == TypeNull
}

func (v *SimpleValue) Bytes() int {
	switch v.typ {
	case TypeText:
		return len(v.strVal)
	case TypeBlob:
		return len(v.blbVal)
	case TypeInteger, TypeFloat:
		return 8
	default:
		return 0
	}
}

// parseNumeric applies SQLite-style numeric coercion to text: the longest
// numeric prefix counts, anything else is integer zero.
func parseNumeric(s string) (int64, float64, ValueType) {
	s = strings.TrimSpace(s)
	end := 0
	seenDot, seenExp := false, false
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp && end > 0:
			seenExp = true
		default:
			goto parsed
		}
		end++
	}
parsed:
	prefix := s[:end]
	if !seenDot && !seenExp {
		if i, err := strconv.ParseInt(prefix, 10, 64); err == nil {
			return i, float64(i), TypeInteger
		}
	}
	if f, err := strconv.ParseFloat(prefix, 64); err == nil {
		return int64(f), f, TypeFloat
	}
	return 0, 0, TypeInteger
}

// numericType reports the type a value takes after numeric coercion: text is
// parsed, blobs coerce like text, NULL stays NULL.
func numericType(v Value) ValueType {
	switch v.Type() {
	case TypeNull, TypeInteger, TypeFloat:
		return v.Type()
	default:
		_, _, t := parseNumeric(v.AsString())
		return t
	}
}

// Registry holds all registered functions.
type Registry struct {
	functions map[string]Function
}

// NewRegistry creates a new function registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[string]Function),
	}
}

// Register registers a function.
func (r *Registry) Register(fn Function) {
	r.functions[fn.Name()] = fn
}

// Lookup finds a function by name.
func (r *Registry) Lookup(name string) (Function, error) {
	fn, ok := r.functions[name]
	if !ok {
		return nil, xerrors.Wrapf(xerrors.ErrUnknownFunction, "%s", name)
	}
	return fn, nil
}

// All returns all registered functions.
func (r *Registry) All() []Function {
	result := make([]Function, 0, len(r.functions))
	for _, fn := range r.functions {
		result = append(result, fn)
	}
	return result
}

// notScalar is the Call result shared by every aggregate prototype.
func notScalar(name string) error {
	return fmt.Errorf("%s() is an aggregate function: %w", name, xerrors.ErrNotAggregate)
}

// DefaultRegistry returns a registry holding the full extension catalog.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	RegisterMathFunctions(r)
	RegisterStringFunctions(r)
	RegisterAggregateFunctions(r)
	RegisterMiscFunctions(r)

	return r
}
