package math

import stdmath "math"

// Scalar helper functions for single-element operations.
// The vector functions in this package evaluate every lane through these
// helpers; float32 lanes are computed in float64 and rounded once.

// Exp32Scalar computes e^x for a single float32.
func Exp32Scalar(x float32) float32 { return float32(stdmath.Exp(float64(x))) }

// Exp64Scalar computes e^x for a single float64.
func Exp64Scalar(x float64) float64 { return stdmath.Exp(x) }

// Exp2_32Scalar computes 2^x for a single float32.
func Exp2_32Scalar(x float32) float32 { return float32(stdmath.Exp2(float64(x))) }

// Exp2_64Scalar computes 2^x for a single float64.
func Exp2_64Scalar(x float64) float64 { return stdmath.Exp2(x) }

// Expm1_32Scalar computes e^x - 1 for a single float32.
func Expm1_32Scalar(x float32) float32 { return float32(stdmath.Expm1(float64(x))) }

// Expm1_64Scalar computes e^x - 1 for a single float64.
func Expm1_64Scalar(x float64) float64 { return stdmath.Expm1(x) }

// Log32Scalar computes ln(x) for a single float32.
func Log32Scalar(x float32) float32 { return float32(stdmath.Log(float64(x))) }

// Log64Scalar computes ln(x) for a single float64.
func Log64Scalar(x float64) float64 { return stdmath.Log(x) }

// Log2_32Scalar computes log₂(x) for a single float32.
func Log2_32Scalar(x float32) float32 { return float32(stdmath.Log2(float64(x))) }

// Log2_64Scalar computes log₂(x) for a single float64.
func Log2_64Scalar(x float64) float64 { return stdmath.Log2(x) }

// Log10_32Scalar computes log₁₀(x) for a single float32.
func Log10_32Scalar(x float32) float32 { return float32(stdmath.Log10(float64(x))) }

// Log10_64Scalar computes log₁₀(x) for a single float64.
func Log10_64Scalar(x float64) float64 { return stdmath.Log10(x) }

// Log1p32Scalar computes ln(1 + x) for a single float32.
func Log1p32Scalar(x float32) float32 { return float32(stdmath.Log1p(float64(x))) }

// Log1p64Scalar computes ln(1 + x) for a single float64.
func Log1p64Scalar(x float64) float64 { return stdmath.Log1p(x) }

// Sin32Scalar computes sin(x) for a single float32.
func Sin32Scalar(x float32) float32 { return float32(stdmath.Sin(float64(x))) }

// Sin64Scalar computes sin(x) for a single float64.
func Sin64Scalar(x float64) float64 { return stdmath.Sin(x) }

// Cos32Scalar computes cos(x) for a single float32.
func Cos32Scalar(x float32) float32 { return float32(stdmath.Cos(float64(x))) }

// Cos64Scalar computes cos(x) for a single float64.
func Cos64Scalar(x float64) float64 { return stdmath.Cos(x) }

// Tan32Scalar computes tan(x) for a single float32.
func Tan32Scalar(x float32) float32 { return float32(stdmath.Tan(float64(x))) }

// Tan64Scalar computes tan(x) for a single float64.
func Tan64Scalar(x float64) float64 { return stdmath.Tan(x) }

// Sinh32Scalar computes sinh(x) for a single float32.
func Sinh32Scalar(x float32) float32 { return float32(stdmath.Sinh(float64(x))) }

// Sinh64Scalar computes sinh(x) for a single float64.
func Sinh64Scalar(x float64) float64 { return stdmath.Sinh(x) }

// Cosh32Scalar computes cosh(x) for a single float32.
func Cosh32Scalar(x float32) float32 { return float32(stdmath.Cosh(float64(x))) }

// Cosh64Scalar computes cosh(x) for a single float64.
func Cosh64Scalar(x float64) float64 { return stdmath.Cosh(x) }

// Tanh32Scalar computes tanh(x) for a single float32.
func Tanh32Scalar(x float32) float32 { return float32(stdmath.Tanh(float64(x))) }

// Tanh64Scalar computes tanh(x) for a single float64.
func Tanh64Scalar(x float64) float64 { return stdmath.Tanh(x) }

// Asin32Scalar computes asin(x) for a single float32.
func Asin32Scalar(x float32) float32 { return float32(stdmath.Asin(float64(x))) }

// Asin64Scalar computes asin(x) for a single float64.
func Asin64Scalar(x float64) float64 { return stdmath.Asin(x) }

// Acos32Scalar computes acos(x) for a single float32.
func Acos32Scalar(x float32) float32 { return float32(stdmath.Acos(float64(x))) }

// Acos64Scalar computes acos(x) for a single float64.
func Acos64Scalar(x float64) float64 { return stdmath.Acos(x) }

// Atan32Scalar computes atan(x) for a single float32.
func Atan32Scalar(x float32) float32 { return float32(stdmath.Atan(float64(x))) }

// Atan64Scalar computes atan(x) for a single float64.
func Atan64Scalar(x float64) float64 { return stdmath.Atan(x) }

// Erf32Scalar computes erf(x) for a single float32.
func Erf32Scalar(x float32) float32 { return float32(stdmath.Erf(float64(x))) }

// Erf64Scalar computes erf(x) for a single float64.
func Erf64Scalar(x float64) float64 { return stdmath.Erf(x) }

// Erfc32Scalar computes erfc(x) for a single float32.
func Erfc32Scalar(x float32) float32 { return float32(stdmath.Erfc(float64(x))) }

// Erfc64Scalar computes erfc(x) for a single float64.
func Erfc64Scalar(x float64) float64 { return stdmath.Erfc(x) }

// Erfinv32Scalar computes the inverse error function for a single float32.
func Erfinv32Scalar(x float32) float32 { return float32(stdmath.Erfinv(float64(x))) }

// Erfinv64Scalar computes the inverse error function for a single float64.
func Erfinv64Scalar(x float64) float64 { return stdmath.Erfinv(x) }

// Sqrt32Scalar computes sqrt(x) for a single float32.
func Sqrt32Scalar(x float32) float32 { return float32(stdmath.Sqrt(float64(x))) }

// Sqrt64Scalar computes sqrt(x) for a single float64.
func Sqrt64Scalar(x float64) float64 { return stdmath.Sqrt(x) }

// Atan2_32Scalar computes atan2(y, x) for single float32 values.
func Atan2_32Scalar(y, x float32) float32 { return float32(stdmath.Atan2(float64(y), float64(x))) }

// Atan2_64Scalar computes atan2(y, x) for single float64 values.
func Atan2_64Scalar(y, x float64) float64 { return stdmath.Atan2(y, x) }

// Pow32Scalar computes x^y for single float32 values.
func Pow32Scalar(x, y float32) float32 { return float32(stdmath.Pow(float64(x), float64(y))) }

// Pow64Scalar computes x^y for single float64 values.
func Pow64Scalar(x, y float64) float64 { return stdmath.Pow(x, y) }

// Hypot32Scalar computes sqrt(x² + y²) for single float32 values.
func Hypot32Scalar(x, y float32) float32 { return float32(stdmath.Hypot(float64(x), float64(y))) }

// Hypot64Scalar computes sqrt(x² + y²) for single float64 values.
func Hypot64Scalar(x, y float64) float64 { return stdmath.Hypot(x, y) }

// Lgamma32Scalar computes ln|Γ(x)| for a single float32.
func Lgamma32Scalar(x float32) float32 {
	lg, _ := stdmath.Lgamma(float64(x))
	return float32(lg)
}

// Lgamma64Scalar computes ln|Γ(x)| for a single float64.
func Lgamma64Scalar(x float64) float64 {
	lg, _ := stdmath.Lgamma(x)
	return lg
}

// NextAfter32Scalar returns the next representable float32 after x towards y.
func NextAfter32Scalar(x, y float32) float32 { return stdmath.Nextafter32(x, y) }

// NextAfter64Scalar returns the next representable float64 after x towards y.
func NextAfter64Scalar(x, y float64) float64 { return stdmath.Nextafter(x, y) }

// Sigmoid32Scalar computes sigmoid(x) = 1/(1+exp(-x)) for a single float32.
func Sigmoid32Scalar(x float32) float32 { return float32(1.0 / (1.0 + stdmath.Exp(-float64(x)))) }

// Sigmoid64Scalar computes sigmoid(x) = 1/(1+exp(-x)) for a single float64.
func Sigmoid64Scalar(x float64) float64 { return 1.0 / (1.0 + stdmath.Exp(-x)) }
