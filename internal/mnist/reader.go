package mnist

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/born-ml/mlp/internal/linalg"
	"github.com/born-ml/mlp/internal/train"
)

// Classes is the number of digit labels.
const Classes = 10

// Image is one labelled digit.
type Image struct {
	Label  int
	Width  int
	Height int
	Pixels *linalg.Vector // Width*Height values in [0, 1], row by row
	Target *linalg.Vector // one-hot encoding of Label
}

// Example pairs the pixels with the one-hot target.
func (im Image) Example() train.Example {
	return train.Example{Input: im.Pixels, Expected: im.Target}
}

// Examples converts images to training examples.
func Examples(images []Image) []train.Example {
	out := make([]train.Example, len(images))
	for i, im := range images {
		out[i] = im.Example()
	}
	return out
}

// LabelVector returns the one-hot vector for a digit.
func LabelVector(label int) (*linalg.Vector, error) {
	if label < 0 || label >= Classes {
		return nil, fmt.Errorf("%w: %d", ErrBadLabel, label)
	}
	v, err := linalg.NewVector(Classes)
	if err != nil {
		return nil, err
	}
	v.Set(label, 1)
	return v, nil
}

// ReadImages reads an image file and its label file.
func ReadImages(images, labels io.Reader) ([]Image, error) {
	imagesHeader, err := ReadHeader(images)
	if err != nil {
		return nil, fmt.Errorf("images: %w", err)
	}
	labelsHeader, err := ReadHeader(labels)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}

	if imagesHeader.Type != UnsignedByte || labelsHeader.Type != UnsignedByte {
		return nil, fmt.Errorf("%w: images %v, labels %v", ErrUnsupportedType, imagesHeader.Type, labelsHeader.Type)
	}
	if len(imagesHeader.Dimensions) != 3 {
		return nil, fmt.Errorf("%w: image file has %d dimensions, want 3", ErrBadDimensions, len(imagesHeader.Dimensions))
	}
	if len(labelsHeader.Dimensions) != 1 {
		return nil, fmt.Errorf("%w: label file has %d dimensions, want 1", ErrBadDimensions, len(labelsHeader.Dimensions))
	}

	count := imagesHeader.Dimensions[0]
	if labelsHeader.Dimensions[0] != count {
		return nil, fmt.Errorf("%w: %d images, %d labels", ErrCountMismatch, count, labelsHeader.Dimensions[0])
	}
	width, height := imagesHeader.Dimensions[1], imagesHeader.Dimensions[2]
	if count > 0 && (width == 0 || height == 0) {
		return nil, fmt.Errorf("%w: empty %dx%d images", ErrBadDimensions, width, height)
	}

	result := make([]Image, 0, min(count, 1<<16))
	raw := make([]byte, width*height)
	var label [1]byte
	for i := 0; i < count; i++ {
		if err := readFull(labels, label[:], fmt.Sprintf("label %d", i)); err != nil {
			return nil, err
		}
		if err := readFull(images, raw, fmt.Sprintf("image %d", i)); err != nil {
			return nil, err
		}

		target, err := LabelVector(int(label[0]))
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		pixels := make([]float64, len(raw))
		for j, b := range raw {
			pixels[j] = float64(b) / 255.0
		}
		v, err := linalg.VectorFrom(pixels)
		if err != nil {
			return nil, err
		}

		result = append(result, Image{
			Label:  int(label[0]),
			Width:  width,
			Height: height,
			Pixels: v,
			Target: target,
		})
	}
	return result, nil
}

// Set selects the training or test half of the dataset.
type Set int

// Dataset halves.
const (
	Training Set = iota
	Test
)

// Files returns the standard image and label file names of s.
func (s Set) Files() (images, labels string) {
	if s == Test {
		return "t10k-images.idx3-ubyte", "t10k-labels.idx1-ubyte"
	}
	return "train-images.idx3-ubyte", "train-labels.idx1-ubyte"
}

func (s Set) String() string {
	if s == Test {
		return "test"
	}
	return "training"
}

// Load reads set from the standard files in dir. Each file may also be
// gzip-compressed with a ".gz" suffix.
func Load(dir string, set Set) ([]Image, error) {
	imagesName, labelsName := set.Files()

	images, err := openIDX(filepath.Join(dir, imagesName))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s images: %w", set, err)
	}
	defer images.Close()

	labels, err := openIDX(filepath.Join(dir, labelsName))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s labels: %w", set, err)
	}
	defer labels.Close()

	return ReadImages(images, labels)
}

type idxFile struct {
	io.Reader
	closers []io.Closer
}

func (f *idxFile) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		errs = append(errs, f.closers[i].Close())
	}
	return errors.Join(errs...)
}

// openIDX opens path, or path+".gz" when path does not exist.
func openIDX(path string) (*idxFile, error) {
	//nolint:gosec // G304: dataset path comes from the user
	file, err := os.Open(path)
	if err == nil {
		return &idxFile{Reader: bufio.NewReader(file), closers: []io.Closer{file}}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	//nolint:gosec // G304: dataset path comes from the user
	file, gzErr := os.Open(path + ".gz")
	if gzErr != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(bufio.NewReader(file))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%s.gz: %w", path, err)
	}
	return &idxFile{Reader: zr, closers: []io.Closer{file, zr}}, nil
}
