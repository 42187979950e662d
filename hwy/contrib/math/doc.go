// Package math provides transcendental functions over hwy vectors.
//
// Every function is generic over float32 and float64 lanes and follows the
// special-value rules of the standard library math package, which serves as
// the reference: float32 lanes are evaluated in float64 and rounded once, so
// results are within 1 ULP of the exact value.
//
// # Functions
//
// Exponential and logarithmic: Exp, Exp2, Expm1, Log, Log2, Log10, Log1p.
//
// Trigonometric: Sin, Cos, Tan, SinCos, Asin, Acos, Atan, Atan2.
//
// Hyperbolic: Sinh, Cosh, Tanh.
//
// Special: Erf, Erfc, Erfinv, Lgamma, Sigmoid, Pow, Hypot, NextAfter.
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/hwyqat/hwy"
//	    "github.com/ajroetker/hwyqat/hwy/contrib/math"
//	)
//
//	hwy.Map(input, output, math.Exp[float32])
package math
