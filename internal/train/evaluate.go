package train

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/parallel"
)

// Example is one labelled training or evaluation case.
type Example struct {
	Input    *linalg.Vector
	Expected *linalg.Vector
}

// Split returns the inputs and expected outputs of examples as parallel
// slices, the shape RunGradientDescent takes.
func Split(examples []Example) (inputs, expected []*linalg.Vector) {
	inputs = make([]*linalg.Vector, len(examples))
	expected = make([]*linalg.Vector, len(examples))
	for i, ex := range examples {
		inputs[i] = ex.Input
		expected[i] = ex.Expected
	}
	return inputs, expected
}

// SquaredError returns Σ(output − expected)².
func SquaredError(output, expected *linalg.Vector) (float64, error) {
	if output.Size() != expected.Size() {
		return 0, fmt.Errorf("squared error of %d against %d values: %w",
			output.Size(), expected.Size(), linalg.ErrDimensionMismatch)
	}
	diff := make([]float64, output.Size())
	floats.SubTo(diff, output.Values(), expected.Values())
	return floats.Dot(diff, diff), nil
}

// Result summarises an evaluation pass.
type Result struct {
	Passes      int     // examples whose largest output matches the largest expected value
	Total       int     // examples evaluated
	AverageCost float64 // mean squared error per example
}

// Accuracy is Passes/Total, zero for an empty evaluation.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Passes) / float64(r.Total)
}

// Evaluate applies net to every example and scores the outputs. An output
// passes when its arg max equals the arg max of the expected vector.
func Evaluate(net *nn.Network, examples []Example, cfg parallel.Config) (Result, error) {
	if net == nil {
		return Result{}, ErrNilNetwork
	}

	costs := make([]float64, len(examples))
	passes := make([]bool, len(examples))
	err := parallel.ForErr(len(examples), func(i int) error {
		out, err := net.Apply(examples[i].Input)
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		c, err := SquaredError(out, examples[i].Expected)
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		costs[i] = c
		passes[i] = out.ArgMax() == examples[i].Expected.ArgMax()
		return nil
	}, cfg.PerItem())
	if err != nil {
		return Result{}, err
	}

	res := Result{Total: len(examples)}
	total := 0.0
	for i := range examples {
		total += costs[i]
		if passes[i] {
			res.Passes++
		}
	}
	if res.Total > 0 {
		res.AverageCost = total / float64(res.Total)
	}
	return res, nil
}
