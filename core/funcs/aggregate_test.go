package funcs

import (
	"math"
	"testing"
)

// runAggregate steps a fresh instance of the named aggregate over the given
// values and finalizes it.
func runAggregate(t *testing.T, name string, values ...Value) Value {
	t.Helper()
	fn, err := DefaultRegistry().Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%s) failed: %v", name, err)
	}
	agg, ok := fn.(AggregateFunction)
	if !ok {
		t.Fatalf("%s is not an aggregate", name)
	}
	inst := agg.NewInstance()
	for _, v := range values {
		if err := inst.Step([]Value{v}); err != nil {
			t.Fatalf("%s.Step(%v) failed: %v", name, v, err)
		}
	}
	result, err := inst.Final()
	if err != nil {
		t.Fatalf("%s.Final failed: %v", name, err)
	}
	return result
}

func ints(vs ...int64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = testInt(v)
	}
	return out
}

func TestVariance(t *testing.T) {
	tests := []struct {
		values   []Value
		expected float64
	}{
		{ints(1, 2, 3, 4, 5), 2.5},
		{ints(2, 2, 2), 0},
		{ints(7), 0},    // a single row has no spread
		{nil, 0},        // no rows at all
		{ints(1, 1000000), 499999000000.5},
	}

	for _, test := range tests {
		result := runAggregate(t, "variance", test.values...)
		if got := result.AsFloat64(); math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("variance(%v) = %g, want %g", test.values, got, test.expected)
		}
	}
}

func TestStdev(t *testing.T) {
	result := runAggregate(t, "stdev", ints(1, 2, 3, 4, 5)...)
	if got := result.AsFloat64(); math.Abs(got-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("stdev(1..5) = %g, want %g", got, math.Sqrt(2.5))
	}

	result = runAggregate(t, "stdev", testInt(42))
	if result.AsFloat64() != 0 {
		t.Errorf("stdev of one row = %g, want 0", result.AsFloat64())
	}
}

func TestWelfordSkipsNull(t *testing.T) {
	result := runAggregate(t, "variance",
		testInt(1), testNull(), testInt(2), testNull(), testInt(3))
	if got := result.AsFloat64(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("variance(1, NULL, 2, NULL, 3) = %g, want 1", got)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		values   []Value
		expected Value // nil means NULL expected
	}{
		{ints(1, 2, 2, 3), testInt(2)},
		{ints(5, 5, 5), testInt(5)},
		{ints(7), testInt(7)},
		{ints(1, 1, 2, 2), nil},   // two-way tie
		{ints(1, 2, 3), nil},      // everything tied at one
		{nil, nil},                // empty input
	}

	for _, test := range tests {
		result := runAggregate(t, "mode", test.values...)
		if test.expected == nil {
			if !result.IsNull() {
				t.Errorf("mode(%v) = %v, want NULL", test.values, result)
			}
			continue
		}
		if result.Type() != TypeInteger || result.AsInt64() != test.expected.AsInt64() {
			t.Errorf("mode(%v) = %v %v, want integer %d",
				test.values, result.Type(), result, test.expected.AsInt64())
		}
	}
}

func TestModeFloat(t *testing.T) {
	result := runAggregate(t, "mode", testFloat(1.5), testFloat(2.5), testFloat(1.5))
	if result.Type() != TypeFloat || result.AsFloat64() != 1.5 {
		t.Errorf("mode(1.5, 2.5, 1.5) = %v %v, want real 1.5", result.Type(), result)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		values   []Value
		typ      ValueType
		expected float64
	}{
		{ints(1, 2, 3), TypeInteger, 2},
		{ints(1, 2, 3, 4), TypeFloat, 2.5},
		{ints(1, 1, 2, 3), TypeFloat, 1.5},
		{ints(1, 1, 1, 3), TypeInteger, 1},
		{ints(5), TypeInteger, 5},
		{ints(4, 1, 3, 2), TypeFloat, 2.5}, // order of arrival is irrelevant
	}

	for _, test := range tests {
		result := runAggregate(t, "median", test.values...)
		if result.Type() != test.typ {
			t.Errorf("median(%v) type = %v, want %v", test.values, result.Type(), test.typ)
		}
		if got := result.AsFloat64(); got != test.expected {
			t.Errorf("median(%v) = %g, want %g", test.values, got, test.expected)
		}
	}
}

func TestMedianFloatInput(t *testing.T) {
	result := runAggregate(t, "median", testFloat(1.0), testFloat(2.0), testFloat(3.0))
	if result.Type() != TypeFloat || result.AsFloat64() != 2.0 {
		t.Errorf("median(1.0, 2.0, 3.0) = %v %v, want real 2", result.Type(), result)
	}
}

func TestQuartiles(t *testing.T) {
	tests := []struct {
		name     string
		values   []Value
		typ      ValueType
		expected float64
	}{
		{"lower_quartile", ints(1, 2, 3, 4), TypeFloat, 1.5},
		{"upper_quartile", ints(1, 2, 3, 4), TypeFloat, 3.5},
		{"lower_quartile", ints(1, 2, 3, 4, 5), TypeInteger, 2},
		{"upper_quartile", ints(1, 2, 3, 4, 5), TypeInteger, 4},
	}

	for _, test := range tests {
		result := runAggregate(t, test.name, test.values...)
		if result.Type() != test.typ {
			t.Errorf("%s(%v) type = %v, want %v", test.name, test.values, result.Type(), test.typ)
		}
		if got := result.AsFloat64(); got != test.expected {
			t.Errorf("%s(%v) = %g, want %g", test.name, test.values, got, test.expected)
		}
	}
}

func TestAggregateEmptyIsNull(t *testing.T) {
	for _, name := range []string{"mode", "median", "lower_quartile", "upper_quartile"} {
		result := runAggregate(t, name)
		if !result.IsNull() {
			t.Errorf("%s of no rows = %v, want NULL", name, result)
		}
	}
}

func TestAggregateSkipsNull(t *testing.T) {
	result := runAggregate(t, "median", testNull(), testInt(1), testNull(), testInt(2), testInt(3))
	if result.AsInt64() != 2 {
		t.Errorf("median with NULLs = %v, want 2", result)
	}

	result = runAggregate(t, "median", testNull(), testNull())
	if !result.IsNull() {
		t.Errorf("median of only NULLs = %v, want NULL", result)
	}
}

func TestAggregateInstanceIsolation(t *testing.T) {
	fn, err := DefaultRegistry().Lookup("median")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	proto := fn.(AggregateFunction)

	a := proto.NewInstance()
	b := proto.NewInstance()
	for _, v := range ints(1, 2, 3) {
		if err := a.Step([]Value{v}); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	for _, v := range ints(10, 20, 30) {
		if err := b.Step([]Value{v}); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	ra, _ := a.Final()
	rb, _ := b.Final()
	if ra.AsInt64() != 2 || rb.AsInt64() != 20 {
		t.Errorf("isolated instances = %v, %v, want 2, 20", ra, rb)
	}
}

func TestAggregateFinalResets(t *testing.T) {
	fn, _ := DefaultRegistry().Lookup("mode")
	inst := fn.(AggregateFunction).NewInstance()

	if err := inst.Step([]Value{testInt(9)}); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if r, _ := inst.Final(); r.AsInt64() != 9 {
		t.Fatalf("first Final = %v, want 9", r)
	}
	// The accumulator must be empty again after Final.
	if r, _ := inst.Final(); !r.IsNull() {
		t.Errorf("second Final = %v, want NULL", r)
	}
}

func TestTextInputFixesRepresentation(t *testing.T) {
	// The first row looks numeric-integer, so the whole group is an
	// integer multiset and the result keeps integer typing.
	result := runAggregate(t, "median", testText("1"), testText("2"), testText("3"))
	if result.Type() != TypeInteger || result.AsInt64() != 2 {
		t.Errorf("median('1','2','3') = %v %v, want integer 2", result.Type(), result)
	}
}
