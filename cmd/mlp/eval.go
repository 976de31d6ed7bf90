package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/mlp/internal/mnist"
	"github.com/born-ml/mlp/internal/serialization"
	"github.com/born-ml/mlp/internal/train"
)

func runEval(args []string, out io.Writer) error {
	var (
		data dataFlags
		in   string
		seed uint64
	)
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(out)
	data.register(fs)
	fs.StringVar(&in, "in", "", "Saved model to evaluate (required)")
	fs.Uint64Var(&seed, "seed", 1, "Seed for synthetic data")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in == "" {
		return errors.New("eval: -in is required")
	}
	cfg := data.parallelism()

	net, header, err := serialization.LoadFile(in, serialization.ReaderOptions{})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", in, err)
	}
	images, err := data.load(mnist.Test, seed)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	result, err := train.Evaluate(net, mnist.Examples(images), cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Model %s %v\n", header.ModelID, net.Sizes())
	fmt.Fprintf(out, "    Passes: %d / %d (%.2f%%)\n", result.Passes, result.Total, 100*result.Accuracy())
	fmt.Fprintf(out, "    Average Cost: %v\n", result.AverageCost)
	return nil
}
