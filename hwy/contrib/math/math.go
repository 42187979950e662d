package math

import "github.com/ajroetker/hwyqat/hwy"

func unary[T hwy.FloatsNative](v hwy.Vec[T], f32 func(float32) float32, f64 func(float64) float64) hwy.Vec[T] {
	switch vv := any(v).(type) {
	case hwy.Vec[float32]:
		return any(mapLanes(vv, f32)).(hwy.Vec[T])
	case hwy.Vec[float64]:
		return any(mapLanes(vv, f64)).(hwy.Vec[T])
	default:
		panic("unsupported float type")
	}
}

func binary[T hwy.FloatsNative](a, b hwy.Vec[T], f32 func(x, y float32) float32, f64 func(x, y float64) float64) hwy.Vec[T] {
	switch va := any(a).(type) {
	case hwy.Vec[float32]:
		return any(mapLanes2(va, any(b).(hwy.Vec[float32]), f32)).(hwy.Vec[T])
	case hwy.Vec[float64]:
		return any(mapLanes2(va, any(b).(hwy.Vec[float64]), f64)).(hwy.Vec[T])
	default:
		panic("unsupported float type")
	}
}

func mapLanes[T float32 | float64](v hwy.Vec[T], fn func(T) T) hwy.Vec[T] {
	in := v.Data()
	out := make([]T, len(in))
	for i, x := range in {
		out[i] = fn(x)
	}
	return hwy.Load(out)
}

func mapLanes2[T float32 | float64](a, b hwy.Vec[T], fn func(x, y T) T) hwy.Vec[T] {
	x, y := a.Data(), b.Data()
	out := make([]T, min(len(x), len(y)))
	for i := range out {
		out[i] = fn(x[i], y[i])
	}
	return hwy.Load(out)
}

// Exp computes e^x for each lane.
//
// Special cases:
//   - Exp(+Inf) = +Inf
//   - Exp(-Inf) = 0
//   - Exp(NaN) = NaN
//
// Example:
//
//	v := hwy.Load([]float32{0, 1, 2, -1})
//	result := math.Exp(v)  // [1, e, e², 1/e]
func Exp[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Exp32Scalar, Exp64Scalar)
}

// Exp2 computes 2^x for each lane.
func Exp2[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Exp2_32Scalar, Exp2_64Scalar)
}

// Expm1 computes e^x - 1 for each lane, accurately near zero.
func Expm1[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Expm1_32Scalar, Expm1_64Scalar)
}

// Log computes the natural logarithm of each lane.
//
// Special cases:
//   - Log(0) = -Inf
//   - Log(x < 0) = NaN
//   - Log(+Inf) = +Inf
func Log[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Log32Scalar, Log64Scalar)
}

// Log2 computes the base-2 logarithm for each lane.
func Log2[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Log2_32Scalar, Log2_64Scalar)
}

// Log10 computes the base-10 logarithm for each lane.
func Log10[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Log10_32Scalar, Log10_64Scalar)
}

// Log1p computes ln(1 + x) for each lane, accurately near zero.
func Log1p[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Log1p32Scalar, Log1p64Scalar)
}

// Sin computes the sine (radians) for each lane.
func Sin[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Sin32Scalar, Sin64Scalar)
}

// Cos computes the cosine (radians) for each lane.
func Cos[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Cos32Scalar, Cos64Scalar)
}

// Tan computes the tangent (radians) for each lane.
func Tan[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Tan32Scalar, Tan64Scalar)
}

// Sinh computes the hyperbolic sine for each lane.
func Sinh[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Sinh32Scalar, Sinh64Scalar)
}

// Cosh computes the hyperbolic cosine for each lane.
func Cosh[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Cosh32Scalar, Cosh64Scalar)
}

// Tanh computes the hyperbolic tangent of each lane. The result is in [-1, 1].
func Tanh[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Tanh32Scalar, Tanh64Scalar)
}

// Asin computes the arcsine for each lane.
func Asin[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Asin32Scalar, Asin64Scalar)
}

// Acos computes the arccosine for each lane.
func Acos[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Acos32Scalar, Acos64Scalar)
}

// Atan computes the arctangent for each lane.
func Atan[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Atan32Scalar, Atan64Scalar)
}

// Erf computes the error function for each lane.
func Erf[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Erf32Scalar, Erf64Scalar)
}

// Erfc computes the complementary error function for each lane.
func Erfc[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Erfc32Scalar, Erfc64Scalar)
}

// Erfinv computes the inverse error function for each lane.
func Erfinv[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Erfinv32Scalar, Erfinv64Scalar)
}

// Lgamma computes ln|Γ(x)| for each lane.
func Lgamma[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Lgamma32Scalar, Lgamma64Scalar)
}

// Sigmoid computes the logistic function 1/(1+exp(-x)) for each lane.
// The result is in [0, 1]; Sigmoid(+Inf) = 1 and Sigmoid(-Inf) = 0.
func Sigmoid[T hwy.FloatsNative](v hwy.Vec[T]) hwy.Vec[T] {
	return unary(v, Sigmoid32Scalar, Sigmoid64Scalar)
}

// Atan2 computes atan2(y, x) using the signs of both arguments to pick the quadrant for each pair of lanes.
func Atan2[T hwy.FloatsNative](y, x hwy.Vec[T]) hwy.Vec[T] {
	return binary(y, x, Atan2_32Scalar, Atan2_64Scalar)
}

// Pow computes x^y for each pair of lanes.
func Pow[T hwy.FloatsNative](x, y hwy.Vec[T]) hwy.Vec[T] {
	return binary(x, y, Pow32Scalar, Pow64Scalar)
}

// Hypot computes sqrt(x² + y²) without undue overflow for each pair of lanes.
func Hypot[T hwy.FloatsNative](x, y hwy.Vec[T]) hwy.Vec[T] {
	return binary(x, y, Hypot32Scalar, Hypot64Scalar)
}

// NextAfter computes the next representable value after x towards y for each pair of lanes.
func NextAfter[T hwy.FloatsNative](x, y hwy.Vec[T]) hwy.Vec[T] {
	return binary(x, y, NextAfter32Scalar, NextAfter64Scalar)
}

// SinCos computes sine and cosine of each lane.
func SinCos[T hwy.FloatsNative](v hwy.Vec[T]) (sin, cos hwy.Vec[T]) {
	return Sin(v), Cos(v)
}
