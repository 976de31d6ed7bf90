package mnist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/born-ml/mlp/internal/linalg"
)

// Side is the width and height of an MNIST digit.
const Side = 28

// LoadCSV loads MNIST data from a Kaggle-style CSV file.
//
//	label,pixel0,pixel1,...,pixel783
//	5,0,0,12,...,0
//
// The header row is skipped. maxSamples limits the rows read; 0 reads all.
func LoadCSV(path string, maxSamples int) ([]Image, error) {
	//nolint:gosec // G304: dataset path comes from the user
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, maxSamples)
}

// ReadCSV reads CSV rows of a label followed by Side*Side pixel values.
func ReadCSV(r io.Reader, maxSamples int) ([]Image, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 1 + Side*Side
	reader.ReuseRecord = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV is empty or missing header: %w", ErrTruncated)
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var images []Image
	for row := 1; maxSamples <= 0 || len(images) < maxSamples; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", row, err)
		}
		target, err := LabelVector(label)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		pixels := make([]float64, Side*Side)
		for j := range pixels {
			p, err := strconv.Atoi(record[j+1])
			if err != nil {
				return nil, fmt.Errorf("invalid pixel at row %d, column %d: %w", row, j+1, err)
			}
			if p < 0 || p > 255 {
				return nil, fmt.Errorf("pixel %d out of range [0, 255] at row %d, column %d", p, row, j+1)
			}
			pixels[j] = float64(p) / 255.0
		}
		v, err := linalg.VectorFrom(pixels)
		if err != nil {
			return nil, err
		}

		images = append(images, Image{Label: label, Width: Side, Height: Side, Pixels: v, Target: target})
	}
	return images, nil
}
