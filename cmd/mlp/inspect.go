package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/born-ml/mlp/internal/serialization"
)

func runInspect(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(out)
	verify := fs.Bool("verify", true, "Verify the payload checksum")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("inspect: expected one model file")
	}

	r, err := serialization.NewMmapReader(fs.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	fmt.Fprintf(out, "Model:      %s\n", h.ModelID)
	fmt.Fprintf(out, "Format:     v%d (flags %#x)\n", r.Version(), r.Flags())
	fmt.Fprintf(out, "Created:    %s\n", h.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Sizes:      %v\n", h.Sizes)
	fmt.Fprintf(out, "Activation: %s\n", h.Activation)
	fmt.Fprintf(out, "Payload:    %d bytes, sha256 %x\n", r.PayloadSize(), r.Checksum())

	if t := h.Training; t != nil {
		fmt.Fprintf(out, "Training:   epoch %d, lr %v, batch %d, accuracy %.2f%%, cost %v\n",
			t.Epoch, t.LearningRate, t.BatchSize, 100*t.Accuracy, t.AverageCost)
	}
	if len(h.Metadata) > 0 {
		keys := make([]string, 0, len(h.Metadata))
		for k := range h.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "Metadata:   %s=%s\n", k, h.Metadata[k])
		}
	}

	if *verify {
		if err := r.Verify(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Checksum:   OK")
	}
	return nil
}
