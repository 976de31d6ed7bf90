// Package main provides the mlp CLI: train, evaluate and inspect
// multilayer perceptrons on the MNIST digits.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("mlp: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "mlp %s\n", version)
		return nil
	case "train":
		_, err := runTrain(args[1:], out)
		return err
	case "eval":
		return runEval(args[1:], out)
	case "inspect":
		return runInspect(args[1:], out)
	case "help", "-h", "-help", "--help":
		usage(out)
		return nil
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "mlp - multilayer perceptron trainer")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  train      Train a network by mini-batch gradient descent")
	fmt.Fprintln(out, "  eval       Score a saved network on a dataset")
	fmt.Fprintln(out, "  inspect    Print the header of a saved network")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'mlp <command> -h' for the flags of a command.")
}
