package funcs

import (
	"math"

	xerrors "github.com/mlourenco/extrafn/core/errors"
	"github.com/mlourenco/extrafn/core/treemap"
)

// RegisterAggregateFunctions registers the statistical aggregates.
func RegisterAggregateFunctions(r *Registry) {
	r.Register(newWelford("stdev", func(n int64, s float64) float64 {
		if n > 1 {
			return math.Sqrt(s / float64(n-1))
		}
		return 0.0
	}))
	r.Register(newWelford("variance", func(n int64, s float64) float64 {
		if n > 1 {
			return s / float64(n-1)
		}
		return 0.0
	}))

	r.Register(&modeAgg{})
	r.Register(newPercentile("median", func(total int64) float64 {
		return float64(total) / 2.0
	}))
	r.Register(newPercentile("lower_quartile", func(total int64) float64 {
		return float64(total) / 4.0
	}))
	r.Register(newPercentile("upper_quartile", func(total int64) float64 {
		return float64(total) * 3.0 / 4.0
	}))
}

// welfordAgg computes a running variance with Welford's recurrence. The
// update order matters: S folds in the delta against the already-updated
// mean, which is what keeps the recurrence numerically stable.
type welfordAgg struct {
	name  string
	final func(n int64, s float64) float64

	n    int64
	mean float64
	s    float64
}

func newWelford(name string, final func(n int64, s float64) float64) *welfordAgg {
	return &welfordAgg{name: name, final: final}
}

func (a *welfordAgg) Name() string { return a.name }
func (a *welfordAgg) NumArgs() int { return 1 }

func (a *welfordAgg) Call(args []Value) (Value, error) {
	return nil, notScalar(a.name)
}

func (a *welfordAgg) Step(args []Value) error {
	if len(args) != 1 {
		return &xerrors.ArityError{Func: a.name, Want: 1, Got: len(args)}
	}
	if args[0].IsNull() {
		return nil
	}
	x := args[0].AsFloat64()
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.s += delta * (x - a.mean)
	return nil
}

// Final returns the statistic. Fewer than two rows yield 0.0, not NULL.
func (a *welfordAgg) Final() (Value, error) {
	v := a.final(a.n, a.s)
	a.Reset()
	return NewFloatValue(v), nil
}

func (a *welfordAgg) Reset() {
	a.n, a.mean, a.s = 0, 0, 0
}

func (a *welfordAgg) NewInstance() AggregateFunction {
	return newWelford(a.name, a.final)
}

// multiset accumulates rows into an ordered multiset. The first non-null row
// fixes the key representation: integers (and anything coercing to integer)
// build an int64 tree, everything else a float64 tree, and later rows are
// converted to that representation.
type multiset struct {
	ints   *treemap.Map[int64]
	floats *treemap.Map[float64]
}

func (m *multiset) step(name string, args []Value) error {
	if len(args) != 1 {
		return &xerrors.ArityError{Func: name, Want: 1, Got: len(args)}
	}
	v := args[0]
	if v.IsNull() {
		return nil
	}

	if m.ints == nil && m.floats == nil {
		if numericType(v) == TypeFloat {
			m.floats = treemap.New(treemap.CompareFloat64)
		} else {
			m.ints = treemap.New(treemap.CompareInt64)
		}
	}
	if m.ints != nil {
		m.ints.Insert(v.AsInt64())
	} else {
		m.floats.Insert(v.AsFloat64())
	}
	return nil
}

func (m *multiset) empty() bool {
	return m.ints == nil && m.floats == nil
}

func (m *multiset) total() int64 {
	if m.ints != nil {
		return m.ints.Total()
	}
	if m.floats != nil {
		return m.floats.Total()
	}
	return 0
}

func (m *multiset) reset() {
	m.ints, m.floats = nil, nil
}

// modeAgg returns the most frequent value, or NULL when the maximum count is
// shared by more than one distinct value.
type modeAgg struct {
	set multiset
}

func (a *modeAgg) Name() string { return "mode" }
func (a *modeAgg) NumArgs() int { return 1 }

func (a *modeAgg) Call(args []Value) (Value, error) {
	return nil, notScalar("mode")
}

func (a *modeAgg) Step(args []Value) error {
	return a.set.step("mode", args)
}

func (a *modeAgg) Final() (Value, error) {
	defer a.Reset()
	if a.set.empty() {
		return NewNullValue(), nil
	}
	if a.set.ints != nil {
		key, unique := modeScan(a.set.ints)
		if !unique {
			return NewNullValue(), nil
		}
		return NewIntValue(key), nil
	}
	key, unique := modeScan(a.set.floats)
	if !unique {
		return NewNullValue(), nil
	}
	return NewFloatValue(key), nil
}

func (a *modeAgg) Reset() {
	a.set.reset()
}

func (a *modeAgg) NewInstance() AggregateFunction {
	return &modeAgg{}
}

// number constrains the multiset key representations.
type number interface {
	~int64 | ~float64
}

// modeScan walks the multiset and tracks the highest occurrence count seen.
// A later key matching the running maximum only bumps the tie counter, so the
// reported key is the smallest of the tied set; unique is false when the
// maximum is shared.
func modeScan[K number](m *treemap.Map[K]) (key K, unique bool) {
	var best K
	var bestCount, ties int64
	m.Ascend(func(k K, count int64) bool {
		switch {
		case count > bestCount:
			best, bestCount, ties = k, count, 1
		case count == bestCount:
			ties++
		}
		return true
	})
	return best, ties == 1
}

// percentileAgg returns the value at a fractional position of the ordered
// multiset: the median at half, the quartiles at a quarter and three
// quarters.
type percentileAgg struct {
	name     string
	position func(total int64) float64
	set      multiset
}

func newPercentile(name string, position func(total int64) float64) *percentileAgg {
	return &percentileAgg{name: name, position: position}
}

func (a *percentileAgg) Name() string { return a.name }
func (a *percentileAgg) NumArgs() int { return 1 }

func (a *percentileAgg) Call(args []Value) (Value, error) {
	return nil, notScalar(a.name)
}

func (a *percentileAgg) Step(args []Value) error {
	return a.set.step(a.name, args)
}

// Final returns the order statistic. The result stays an integer only when
// the tree holds integers and exactly one distinct value fell inside the
// window; otherwise it is the mean of the contributing values.
func (a *percentileAgg) Final() (Value, error) {
	defer a.Reset()
	if a.set.empty() {
		return NewNullValue(), nil
	}

	pos := a.position(a.set.total())
	if a.set.ints != nil {
		sum, n := percentileScan(a.set.ints, pos)
		if n == 1 {
			return NewIntValue(sum), nil
		}
		return NewFloatValue(float64(sum) / float64(n)), nil
	}
	sum, n := percentileScan(a.set.floats, pos)
	return NewFloatValue(sum / float64(n)), nil
}

func (a *percentileAgg) Reset() {
	a.set.reset()
}

func (a *percentileAgg) NewInstance() AggregateFunction {
	return newPercentile(a.name, a.position)
}

// percentileScan collects the distinct keys straddling position pos in the
// ordered multiset. A key contributes when at least pos occurrences end at or
// after it and at least total-pos occurrences start at or before it; with pos
// on a boundary that window holds the two middle keys, otherwise one. Each
// contributing key is summed once regardless of its count. The walk stops at
// the first key past the window.
func percentileScan[K number](m *treemap.Map[K], pos float64) (sum K, n int64) {
	total := float64(m.Total())
	var before int64
	m.Ascend(func(k K, count int64) bool {
		atOrBelow := float64(before + count)
		atOrAbove := total - float64(before)
		if atOrBelow >= pos {
			if atOrAbove < total-pos {
				return false
			}
			sum += k
			n++
		}
		before += count
		return true
	})
	return sum, n
}
