package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/born-ml/mlp/internal/initializer"
	"github.com/born-ml/mlp/internal/mnist"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/serialization"
	"github.com/born-ml/mlp/internal/train"
)

type trainFlags struct {
	data       dataFlags
	epochs     int
	batch      int
	lr         float64
	hidden     string
	activation string
	init       string
	test       int
	seed       uint64
	in         string
	out        string
}

func parseTrainFlags(args []string, out io.Writer) (*trainFlags, error) {
	f := &trainFlags{}
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(out)
	f.data.register(fs)
	fs.IntVar(&f.epochs, "epochs", 30, "Number of training epochs")
	fs.IntVar(&f.batch, "batch", 10, "Mini-batch size")
	fs.Float64Var(&f.lr, "lr", 3, "Learning rate")
	fs.StringVar(&f.hidden, "hidden", "30", "Comma-separated hidden layer sizes")
	fs.StringVar(&f.activation, "activation", "sigmoid", "Activation: sigmoid, relu or gelu")
	fs.StringVar(&f.init, "init", "normal", "Weight initialization: normal or xavier")
	fs.IntVar(&f.test, "test", 10000, "Examples held out for evaluation after each epoch")
	fs.Uint64Var(&f.seed, "seed", uint64(time.Now().UnixNano()), "Seed for initialization and shuffling") //nolint:gosec // G115: any bits will do
	fs.StringVar(&f.in, "in", "", "Resume from a saved model instead of a fresh network")
	fs.StringVar(&f.out, "out", "", "Save the trained model to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch {
	case f.epochs < 0:
		return nil, fmt.Errorf("-epochs must be >= 0, got %d", f.epochs)
	case f.batch < 1:
		return nil, fmt.Errorf("-batch must be >= 1, got %d", f.batch)
	case f.lr <= 0:
		return nil, fmt.Errorf("-lr must be > 0, got %v", f.lr)
	case f.test < 0:
		return nil, fmt.Errorf("-test must be >= 0, got %d", f.test)
	}
	return f, nil
}

func parseSizes(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid hidden layer size %q", p)
		}
		sizes[i] = n
	}
	return sizes, nil
}

// buildNetwork loads -in or creates and randomizes a fresh network.
func (f *trainFlags) buildNetwork(inputs int) (*nn.Network, error) {
	if f.in != "" {
		net, _, err := serialization.LoadFile(f.in, serialization.ReaderOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f.in, err)
		}
		return net, nil
	}

	hidden, err := parseSizes(f.hidden)
	if err != nil {
		return nil, err
	}
	act, ok := nn.ActivationByName(f.activation)
	if !ok {
		return nil, fmt.Errorf("unknown activation %q", f.activation)
	}

	sizes := append(append([]int{inputs}, hidden...), mnist.Classes)
	net, err := nn.NewNetwork(sizes...)
	if err != nil {
		return nil, err
	}
	net.Activation = act

	switch f.init {
	case "normal":
		err = initializer.Normal(net, f.seed)
	case "xavier":
		err = initializer.Xavier(net, f.seed)
	default:
		err = fmt.Errorf("unknown initialization %q", f.init)
	}
	if err != nil {
		return nil, err
	}
	return net, nil
}

// runTrain trains a network and returns the evaluation of the last epoch.
func runTrain(args []string, out io.Writer) (train.Result, error) {
	f, err := parseTrainFlags(args, out)
	if err != nil {
		return train.Result{}, err
	}
	cfg := f.data.parallelism()

	fmt.Fprintln(out, "Loading MNIST data...")
	images, err := f.data.load(mnist.Training, f.seed)
	if err != nil {
		return train.Result{}, fmt.Errorf("failed to load data: %w", err)
	}
	examples := mnist.Examples(images)

	fmt.Fprintln(out, "Selecting test cases...")
	rng := rand.New(rand.NewPCG(f.seed, f.seed))
	rng.Shuffle(len(examples), func(i, j int) { examples[i], examples[j] = examples[j], examples[i] })
	if f.test >= len(examples) {
		return train.Result{}, fmt.Errorf("-test %d leaves no training data out of %d examples", f.test, len(examples))
	}
	testData := examples[len(examples)-f.test:]
	trainingData := examples[:len(examples)-f.test]
	fmt.Fprintf(out, "    Train: %d samples, Test: %d samples\n", len(trainingData), len(testData))

	fmt.Fprintln(out, "Initializing network...")
	net, err := f.buildNetwork(trainingData[0].Input.Size())
	if err != nil {
		return train.Result{}, err
	}
	if net.Sizes()[0] != trainingData[0].Input.Size() {
		return train.Result{}, fmt.Errorf("network takes %d inputs, images have %d pixels",
			net.Sizes()[0], trainingData[0].Input.Size())
	}
	fmt.Fprintf(out, "    Sizes: %v (%d parameters), activation %s\n", net.Sizes(), net.ParameterCount(), net.Activation.Name)

	trainer := train.NewQuadratic(train.Config{Parallelism: cfg})
	var result train.Result
	for epoch := 1; epoch <= f.epochs; epoch++ {
		fmt.Fprintf(out, "Running Epoch %d:\n", epoch)
		start := time.Now()
		rng.Shuffle(len(trainingData), func(i, j int) {
			trainingData[i], trainingData[j] = trainingData[j], trainingData[i]
		})

		batches := 0
		for lo := 0; lo < len(trainingData); lo += f.batch {
			inputs, expected := train.Split(trainingData[lo:min(lo+f.batch, len(trainingData))])
			if err := trainer.RunGradientDescent(net, inputs, expected, f.lr); err != nil {
				return train.Result{}, fmt.Errorf("epoch %d batch %d: %w", epoch, batches, err)
			}
			batches++
		}
		fmt.Fprintf(out, "    Executed %d mini-batches in %v\n", batches, time.Since(start).Round(time.Millisecond))

		if len(testData) == 0 {
			continue
		}
		result, err = train.Evaluate(net, testData, cfg)
		if err != nil {
			return train.Result{}, fmt.Errorf("epoch %d evaluation: %w", epoch, err)
		}
		fmt.Fprintf(out, "    Passes: %d / %d\n", result.Passes, result.Total)
		fmt.Fprintf(out, "    Average Cost: %v\n", result.AverageCost)
	}

	if f.out != "" {
		header := serialization.Header{
			Metadata: map[string]string{"dataset": f.data.source()},
			Training: &serialization.TrainingMeta{
				Epoch:        f.epochs,
				LearningRate: f.lr,
				BatchSize:    f.batch,
				Accuracy:     result.Accuracy(),
				AverageCost:  result.AverageCost,
			},
		}
		if err := serialization.SaveFile(f.out, net, header); err != nil {
			return train.Result{}, fmt.Errorf("failed to save model: %w", err)
		}
		fmt.Fprintf(out, "Saved model to %s\n", f.out)
	}
	return result, nil
}
