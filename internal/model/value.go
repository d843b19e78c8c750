package model

// Value is an indicator value that is undefined until its rolling window
// has filled. Every comparison touching an undefined Value is false;
// absence is not zero and never passes a threshold.
type Value struct {
	Val     float64
	Defined bool
}

// Defined wraps a concrete float in a defined Value.
func Defined(v float64) Value { return Value{Val: v, Defined: true} }

// Gt reports whether v is defined and strictly greater than x.
func (v Value) Gt(x float64) bool { return v.Defined && v.Val > x }

// Ge reports whether v is defined and greater than or equal to x.
func (v Value) Ge(x float64) bool { return v.Defined && v.Val >= x }

// Lt reports whether v is defined and strictly less than x.
func (v Value) Lt(x float64) bool { return v.Defined && v.Val < x }

// Le reports whether v is defined and less than or equal to x.
func (v Value) Le(x float64) bool { return v.Defined && v.Val <= x }

// GtV reports whether both values are defined and v > o.
func (v Value) GtV(o Value) bool { return v.Defined && o.Defined && v.Val > o.Val }

// LtV reports whether both values are defined and v < o.
func (v Value) LtV(o Value) bool { return v.Defined && o.Defined && v.Val < o.Val }

// Mul scales a defined value by x; undefined stays undefined.
func (v Value) Mul(x float64) Value {
	if !v.Defined {
		return Value{}
	}
	return Defined(v.Val * x)
}
