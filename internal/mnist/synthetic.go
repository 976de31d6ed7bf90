package mnist

import (
	"math/rand/v2"

	"github.com/born-ml/mlp/internal/linalg"
)

// Synthetic generates n labelled Side×Side images for smoke runs without
// the real dataset.
//
// Digit d is a bright band starting at row 2d, so the classes are
// separable. Each pixel gets uniform noise in [0, noise) from a source
// seeded with seed.
func Synthetic(n int, noise float64, seed uint64) []Image {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	images := make([]Image, n)
	for i := range images {
		label := i % Classes
		pixels := make([]float64, Side*Side)
		for row := 2 * label; row < 2*label+8 && row < Side; row++ {
			for col := 5; col < 23; col++ {
				pixels[row*Side+col] = 0.8
			}
		}
		if noise > 0 {
			for j := range pixels {
				pixels[j] = min(1, pixels[j]+noise*rng.Float64())
			}
		}

		v, _ := linalg.VectorFrom(pixels)
		target, _ := LabelVector(label)
		images[i] = Image{Label: label, Width: Side, Height: Side, Pixels: v, Target: target}
	}
	return images
}
