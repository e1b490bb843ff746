package funcs

import (
	"math"

	xerrors "github.com/mlourenco/extrafn/core/errors"
)

// unaryMath builds a one-argument math wrapper. NULL propagates; an input
// outside the function's domain aborts the call with a DomainError, matching
// the errno checks the C library versions perform.
func unaryMath(name string, inDomain func(x float64) bool, fn func(x float64) float64) *ScalarFunc {
	return NewScalarFunc(name, 1, func(args []Value) (Value, error) {
		if args[0].IsNull() {
			return NewNullValue(), nil
		}
		x := args[0].AsFloat64()
		if inDomain != nil && !inDomain(x) {
			return nil, xerrors.NewDomain(name, "")
		}
		return NewFloatValue(fn(x)), nil
	})
}

// binaryMath builds a two-argument math wrapper with the same NULL and
// domain handling as unaryMath.
func binaryMath(name string, inDomain func(x, y float64) bool, fn func(x, y float64) float64) *ScalarFunc {
	return NewScalarFunc(name, 2, func(args []Value) (Value, error) {
		if args[0].IsNull() || args[1].IsNull() {
			return NewNullValue(), nil
		}
		x, y := args[0].AsFloat64(), args[1].AsFloat64()
		if inDomain != nil && !inDomain(x, y) {
			return nil, xerrors.NewDomain(name, "")
		}
		return NewFloatValue(fn(x, y)), nil
	})
}

// RegisterMathFunctions registers the scalar math wrappers.
func RegisterMathFunctions(r *Registry) {
	r.Register(unaryMath("acos", func(x float64) bool { return x >= -1 && x <= 1 }, math.Acos))
	r.Register(unaryMath("asin", func(x float64) bool { return x >= -1 && x <= 1 }, math.Asin))
	r.Register(unaryMath("atan", nil, math.Atan))
	r.Register(unaryMath("acosh", func(x float64) bool { return x >= 1 }, math.Acosh))
	r.Register(unaryMath("asinh", nil, math.Asinh))
	r.Register(unaryMath("atanh", func(x float64) bool { return x > -1 && x < 1 }, math.Atanh))

	r.Register(unaryMath("cos", nil, math.Cos))
	r.Register(unaryMath("sin", nil, math.Sin))
	r.Register(unaryMath("tan", nil, math.Tan))
	r.Register(unaryMath("cot", func(x float64) bool { return math.Tan(x) != 0 }, func(x float64) float64 {
		return 1 / math.Tan(x)
	}))
	r.Register(unaryMath("cosh", nil, math.Cosh))
	r.Register(unaryMath("sinh", nil, math.Sinh))
	r.Register(unaryMath("tanh", nil, math.Tanh))
	r.Register(unaryMath("coth", func(x float64) bool { return math.Tanh(x) != 0 }, func(x float64) float64 {
		return 1 / math.Tanh(x)
	}))

	r.Register(unaryMath("exp", nil, math.Exp))
	r.Register(unaryMath("log", func(x float64) bool { return x > 0 }, math.Log))
	r.Register(unaryMath("log10", func(x float64) bool { return x > 0 }, math.Log10))
	r.Register(unaryMath("sqrt", func(x float64) bool { return x >= 0 }, math.Sqrt))

	r.Register(unaryMath("degrees", nil, func(x float64) float64 { return x * 180 / math.Pi }))
	r.Register(unaryMath("radians", nil, func(x float64) float64 { return x * math.Pi / 180 }))

	// atn2 is the original name; atan2 is the alias later versions added.
	atan2 := func(name string) *ScalarFunc { return binaryMath(name, nil, math.Atan2) }
	r.Register(atan2("atn2"))
	r.Register(atan2("atan2"))

	r.Register(binaryMath("power", powerDomain, math.Pow))

	r.Register(NewScalarFunc("pi", 0, func(args []Value) (Value, error) {
		return NewFloatValue(math.Pi), nil
	}))

	r.Register(NewScalarFunc("square", 1, squareFunc))
	r.Register(NewScalarFunc("sign", 1, signFunc))
	r.Register(NewScalarFunc("ceil", 1, ceilFunc))
	r.Register(NewScalarFunc("floor", 1, floorFunc))
}

// powerDomain rejects the inputs for which pow sets errno: a negative base
// with a fractional exponent, and a zero base with a negative exponent.
func powerDomain(x, y float64) bool {
	if x < 0 && y != math.Trunc(y) {
		return false
	}
	if x == 0 && y < 0 {
		return false
	}
	return true
}

// squareFunc returns x*x, keeping integer typing for integer input.
func squareFunc(args []Value) (Value, error) {
	switch numericType(args[0]) {
	case TypeNull:
		return NewNullValue(), nil
	case TypeInteger:
		i := args[0].AsInt64()
		return NewIntValue(i * i), nil
	default:
		f := args[0].AsFloat64()
		return NewFloatValue(f * f), nil
	}
}

// signFunc returns -1, 0, or 1 in the type of its input.
func signFunc(args []Value) (Value, error) {
	switch numericType(args[0]) {
	case TypeNull:
		return NewNullValue(), nil
	case TypeInteger:
		i := args[0].AsInt64()
		switch {
		case i > 0:
			return NewIntValue(1), nil
		case i < 0:
			return NewIntValue(-1), nil
		default:
			return NewIntValue(0), nil
		}
	default:
		f := args[0].AsFloat64()
		switch {
		case f > 0:
			return NewFloatValue(1), nil
		case f < 0:
			return NewFloatValue(-1), nil
		default:
			return NewFloatValue(0), nil
		}
	}
}

// ceilFunc rounds up to an integer. Integer input passes through unchanged;
// float input comes back as an integer, the way the C original truncates the
// ceil result into sqlite3_result_int64.
func ceilFunc(args []Value) (Value, error) {
	switch numericType(args[0]) {
	case TypeNull:
		return NewNullValue(), nil
	case TypeInteger:
		return NewIntValue(args[0].AsInt64()), nil
	default:
		return NewIntValue(int64(math.Ceil(args[0].AsFloat64()))), nil
	}
}

// floorFunc rounds down to an integer with the same typing rules as ceilFunc.
func floorFunc(args []Value) (Value, error) {
	switch numericType(args[0]) {
	case TypeNull:
		return NewNullValue(), nil
	case TypeInteger:
		return NewIntValue(args[0].AsInt64()), nil
	default:
		return NewIntValue(int64(math.Floor(args[0].AsFloat64()))), nil
	}
}
