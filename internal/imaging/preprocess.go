package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

const (
	// BlurKernelSize is the side of the noise-suppression blur kernel.
	BlurKernelSize = 5

	// ThresholdBlockSize is the side of the neighbourhood used to compute
	// each pixel's local threshold.
	ThresholdBlockSize = 31

	// ThresholdOffset is subtracted from the local mean to form the threshold.
	ThresholdOffset = 2
)

// Binarize converts a color page into a two-level image for OCR.
//
// The output has the same dimensions as img, with its origin at (0,0).
// Every pixel is either 0 (ink) or 255 (background).
//
// # Algorithm
//
//  1. Grayscale: BT.601 luminance.
//  2. Blur: separable 5x5 Gaussian, sigma derived from the kernel size.
//  3. Threshold: a pixel is background when its blurred value is greater
//     than the Gaussian-weighted mean of its 31x31 neighbourhood minus 2,
//     and ink otherwise.
//
// Pixels outside the image are treated as copies of the nearest edge pixel
// in both convolutions.
func Binarize(img image.Image) *image.Gray {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}

	gray := imaging.Grayscale(img)
	blurred := gaussianSmooth(gray, BlurKernelSize)
	localMean := gaussianSmooth(blurred, ThresholdBlockSize)

	return adaptiveThreshold(blurred, localMean, ThresholdOffset)
}

// gaussianSmooth applies a separable Gaussian of the given odd size.
func gaussianSmooth(src image.Image, size int) *image.RGBA {
	weights := gaussianWeights(size)

	k := convolution.NewKernel(size, 1)
	copy(k.Matrix, weights)

	opts := &convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true}
	horizontal := convolution.Convolve(src, k, opts)
	return convolution.Convolve(horizontal, k.Transposed(), opts)
}

// smallGaussianKernels are the fixed binomial kernels used for small sizes
// when no sigma is given, matching common vision libraries.
var smallGaussianKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// gaussianWeights returns a normalized 1-D Gaussian of the given odd size.
//
// Sizes up to 7 use the binomial table. Larger sizes derive sigma from the
// size as 0.3*((size-1)*0.5-1)+0.8, which gives sigma 5.0 for size 31.
func gaussianWeights(size int) []float64 {
	if k, ok := smallGaussianKernels[size]; ok {
		out := make([]float64, size)
		copy(out, k)
		return out
	}

	sigma := 0.3*((float64(size)-1)*0.5-1) + 0.8
	half := size / 2
	weights := make([]float64, size)
	var sum float64
	for i := range weights {
		x := float64(i - half)
		weights[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

// adaptiveThreshold compares each pixel with its local mean.
// Both inputs are gray values stored in the R channel of an RGBA image.
func adaptiveThreshold(src, mean *image.RGBA, offset int) *image.Gray {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := int(src.Pix[src.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)])
			m := int(mean.Pix[mean.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)])
			if v > m-offset {
				out.SetGray(x, y, color.Gray{Y: 255})
			} else {
				out.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return out
}
