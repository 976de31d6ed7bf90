package main

import (
	"flag"
	"fmt"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/mnist"
	"github.com/born-ml/mlp/internal/parallel"
)

// dataFlags selects where images come from. Exactly one source is used:
// synthetic, then CSV, then the IDX files in dir.
type dataFlags struct {
	dir       string
	csv       string
	synthetic int
	samples   int
	workers   int
}

func (d *dataFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&d.dir, "data", "./data", "Directory containing the MNIST IDX files")
	fs.StringVar(&d.csv, "csv", "", "Kaggle-style MNIST CSV file (overrides -data)")
	fs.IntVar(&d.synthetic, "synthetic", 0, "Use N synthetic images instead of MNIST (for smoke runs)")
	fs.IntVar(&d.samples, "samples", 0, "Max samples to load (0 = all)")
	fs.IntVar(&d.workers, "workers", 0, "Worker goroutines (0 = one per physical core)")
}

// parallelism applies -workers to the matrix engine and returns the config
// for the trainer.
func (d *dataFlags) parallelism() parallel.Config {
	cfg := parallel.DefaultConfig()
	if d.workers > 0 {
		cfg.NumWorkers = d.workers
		cfg.Enabled = d.workers > 1
	}
	linalg.SetParallelism(cfg)
	return cfg
}

func (d *dataFlags) load(set mnist.Set, seed uint64) ([]mnist.Image, error) {
	var (
		images []mnist.Image
		err    error
	)
	switch {
	case d.synthetic > 0:
		images = mnist.Synthetic(d.synthetic, 0.1, seed)
	case d.csv != "":
		images, err = mnist.LoadCSV(d.csv, d.samples)
	default:
		images, err = mnist.Load(d.dir, set)
	}
	if err != nil {
		return nil, err
	}

	if d.samples > 0 && len(images) > d.samples {
		images = images[:d.samples]
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no %s images loaded", set)
	}
	return images, nil
}

// source names the dataset for model metadata.
func (d *dataFlags) source() string {
	switch {
	case d.synthetic > 0:
		return "synthetic"
	case d.csv != "":
		return "mnist-csv"
	default:
		return "mnist"
	}
}
