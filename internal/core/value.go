// Package core implements the aggregation and comparison engine of the
// dashboard: pure transformations from a filtered slice of pre-aggregated
// IRPF rows to weighted per-contributor statistics, comparative metrics and
// year-by-year series. Nothing in this package performs I/O or holds state
// between calls; callers own the loaded Table and pass it in.
package core

import (
	"encoding/json"
	"strconv"
)

// Value is the result of a derived ratio: either a defined float64 or the
// explicit undefined state produced by a zero or missing denominator.
// Undefined is a value, not an error, and every computation that consumes
// an undefined Value yields an undefined Value in turn. It must never be
// coerced to zero.
type Value struct {
	f  float64
	ok bool
}

// Defined wraps a concrete float64.
func Defined(f float64) Value { return Value{f: f, ok: true} }

// Undefined returns the undefined Value.
func Undefined() Value { return Value{} }

// SafeDiv divides num by den, yielding Undefined when the denominator is
// zero. This is the single division policy of the engine.
func SafeDiv(num, den float64) Value {
	if den == 0 {
		return Undefined()
	}
	return Defined(num / den)
}

// IsDefined reports whether the value carries a concrete number.
func (v Value) IsDefined() bool { return v.ok }

// Float64 returns the concrete number and whether it is defined.
func (v Value) Float64() (float64, bool) { return v.f, v.ok }

// Mul multiplies two values; undefined if either operand is undefined.
func (v Value) Mul(o Value) Value {
	if !v.ok || !o.ok {
		return Undefined()
	}
	return Defined(v.f * o.f)
}

// Sub subtracts o from v; undefined if either operand is undefined.
func (v Value) Sub(o Value) Value {
	if !v.ok || !o.ok {
		return Undefined()
	}
	return Defined(v.f - o.f)
}

// Scale multiplies a defined value by the constant f.
func (v Value) Scale(f float64) Value {
	if !v.ok {
		return Undefined()
	}
	return Defined(v.f * f)
}

// DivBy divides v by o; undefined if either operand is undefined or the
// divisor is zero.
func (v Value) DivBy(o Value) Value {
	if !v.ok || !o.ok {
		return Undefined()
	}
	return SafeDiv(v.f, o.f)
}

// MarshalJSON encodes undefined values as null so the presentation layer
// is forced to render a placeholder instead of a number.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.f)
}

// UnmarshalJSON accepts null as the undefined state.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Undefined()
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*v = Defined(f)
	return nil
}
