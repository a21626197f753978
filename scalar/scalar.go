// Package scalar defines the real scalar field used throughout the Steiner
// tree core: a totally-ordered floating field with zero, one, absolute
// value, reciprocal, max/min, sqrt, general power, and a finiteness
// predicate. Every numerically delicate kernel in geomedian and rmt treats
// Real as an opaque field and uses IsFinite as the sole non-finite
// discriminator, never a panic or an error return.
package scalar

import "math"

// Real is the scalar field coordinates, distances, and weights live in.
// It is a plain float64 alias: no wrapper type, so arithmetic on Real
// composes with math.* and with ordinary float64 literals without casts.
type Real = float64

// Zero is the additive identity of the field.
const Zero Real = 0

// One is the multiplicative identity of the field.
const One Real = 1

// IsFinite reports whether x is neither NaN nor +/-Inf. It is the only
// predicate the core uses to discriminate a valid scalar from the result
// of a degenerate operation (division by zero distance, overflow, etc).
func IsFinite(x Real) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Abs returns the absolute value of x.
func Abs(x Real) Real {
	return math.Abs(x)
}

// Recip returns 1/x. Callers must check IsFinite on the result: Recip(0)
// produces +Inf, which is a valid Real value but not a finite one.
func Recip(x Real) Real {
	return One / x
}

// Max returns the greater of a and b.
func Max(a, b Real) Real {
	return math.Max(a, b)
}

// Min returns the lesser of a and b.
func Min(a, b Real) Real {
	return math.Min(a, b)
}

// Sqrt returns the principal square root of x.
func Sqrt(x Real) Real {
	return math.Sqrt(x)
}

// Pow returns x raised to the power y.
func Pow(x, y Real) Real {
	return math.Pow(x, y)
}
