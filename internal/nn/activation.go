package nn

import "math"

// Func is a scalar activation function or derivative.
type Func func(x float64) float64

// Activation pairs an activation function with its derivative. The trainer
// needs both; inference only uses Func.
type Activation struct {
	Name       string
	Func       Func
	Derivative Func
}

// Built-in activations.
var (
	SigmoidActivation = Activation{Name: "sigmoid", Func: Sigmoid, Derivative: DSigmoid}
	ReLUActivation    = Activation{Name: "relu", Func: ReLU, Derivative: DReLU}
	GELUActivation    = Activation{Name: "gelu", Func: GELU, Derivative: DGELU}
)

// ActivationByName returns the built-in activation with the given name.
func ActivationByName(name string) (Activation, bool) {
	for _, a := range []Activation{SigmoidActivation, ReLUActivation, GELUActivation} {
		if a.Name == name {
			return a, true
		}
	}
	return Activation{}, false
}

// Sigmoid is the logistic function σ(x) = 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// DSigmoid is σ'(x) = σ(x)(1 - σ(x)).
func DSigmoid(x float64) float64 {
	s := Sigmoid(x)
	return s * (1 - s)
}

// ReLU is max(0, x).
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// DReLU is 1 for x > 0 and 0 otherwise.
func DReLU(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

const (
	geluCoeff = 0.044715
)

var geluScale = math.Sqrt(2 / math.Pi)

// GELU is the tanh approximation of the Gaussian error linear unit:
// 0.5·x·(1 + tanh(√(2/π)·(x + 0.044715·x³))).
func GELU(x float64) float64 {
	return 0.5 * x * (1 + math.Tanh(geluScale*(x+geluCoeff*x*x*x)))
}

// DGELU is the derivative of GELU.
func DGELU(x float64) float64 {
	t := math.Tanh(geluScale * (x + geluCoeff*x*x*x))
	return 0.5*(1+t) + 0.5*x*(1-t*t)*geluScale*(1+3*geluCoeff*x*x)
}
