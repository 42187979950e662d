package math

import "github.com/ajroetker/hwyqat/hwy"

// Slice transforms apply a lane function to every element of input and write
// the result to output. They process min(len(input), len(output)) elements.

// ExpTransform applies exp(x) to each element.
func ExpTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Exp[T])
}

// LogTransform applies ln(x) to each element.
func LogTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Log[T])
}

// SinTransform applies sin(x) to each element.
func SinTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Sin[T])
}

// CosTransform applies cos(x) to each element.
func CosTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Cos[T])
}

// TanhTransform applies tanh(x) to each element.
func TanhTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Tanh[T])
}

// SigmoidTransform applies 1/(1+exp(-x)) to each element.
func SigmoidTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Sigmoid[T])
}

// ErfTransform applies erf(x) to each element.
func ErfTransform[T hwy.FloatsNative](input, output []T) {
	hwy.Map(input, output, Erf[T])
}
