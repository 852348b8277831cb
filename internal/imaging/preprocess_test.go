package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// unevenPage builds a page whose background fades from bright on the left
// to dim on the right, with a dark vertical stroke at strokeX.
func unevenPage(width, height, strokeX int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			bg := uint8(230 - (100*x)/width)
			c := color.RGBA{bg, bg, bg, 255}
			if x >= strokeX-1 && x <= strokeX+1 {
				c = color.RGBA{20, 20, 20, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBinarize_Dimensions(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {10, 3}, {64, 64}, {200, 50}}
	for _, sz := range sizes {
		out := Binarize(solidImage(sz.w, sz.h, color.RGBA{90, 120, 200, 255}))
		if out.Bounds().Dx() != sz.w || out.Bounds().Dy() != sz.h {
			t.Errorf("size %dx%d: got %dx%d", sz.w, sz.h, out.Bounds().Dx(), out.Bounds().Dy())
		}
	}
}

func TestBinarize_OffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 60, 45))
	out := Binarize(src)
	if out.Bounds() != image.Rect(0, 0, 50, 25) {
		t.Errorf("bounds: got %v, want (0,0)-(50,25)", out.Bounds())
	}
}

func TestBinarize_EmptyImage(t *testing.T) {
	out := Binarize(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if !out.Bounds().Empty() {
		t.Errorf("expected empty output, got %v", out.Bounds())
	}
}

func TestBinarize_TwoLevel(t *testing.T) {
	out := Binarize(unevenPage(160, 40, 80))
	for _, v := range out.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("found non-binary value %d", v)
		}
	}
}

func TestBinarize_UniformBackground(t *testing.T) {
	out := Binarize(solidImage(50, 50, color.RGBA{180, 180, 180, 255}))
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("pixel %d: got %d, want 255 for uniform background", i, v)
		}
	}
}

func TestBinarize_StrokeOnUnevenLight(t *testing.T) {
	out := Binarize(unevenPage(200, 60, 100))

	if got := out.GrayAt(100, 30).Y; got != 0 {
		t.Errorf("stroke centre: got %d, want 0", got)
	}
	// Background on both the bright and the dim side stays white.
	if got := out.GrayAt(20, 30).Y; got != 255 {
		t.Errorf("bright background: got %d, want 255", got)
	}
	if got := out.GrayAt(170, 30).Y; got != 255 {
		t.Errorf("dim background: got %d, want 255", got)
	}
}

func TestGaussianWeights(t *testing.T) {
	for _, size := range []int{3, 5, 7, 31} {
		w := gaussianWeights(size)
		if len(w) != size {
			t.Fatalf("size %d: got %d weights", size, len(w))
		}

		var sum float64
		for i := range w {
			sum += w[i]
			if math.Abs(w[i]-w[size-1-i]) > 1e-12 {
				t.Errorf("size %d: weights not symmetric at %d", size, i)
			}
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("size %d: weights sum to %f, want 1", size, sum)
		}
	}
}

func TestGaussianWeights_SmallKernelIsBinomial(t *testing.T) {
	want := []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}
	got := gaussianWeights(5)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("weight %d: got %f, want %f", i, got[i], want[i])
		}
	}

	// The returned slice must not alias the shared table.
	got[0] = 99
	if smallGaussianKernels[5][0] != 0.0625 {
		t.Error("gaussianWeights returned the shared table")
	}
}

func TestGaussianWeights_LargeKernelSigma(t *testing.T) {
	w := gaussianWeights(31)
	// sigma is 5.0 for size 31, so the weight ratio one step from centre
	// is exp(-1/50).
	ratio := w[16] / w[15]
	if math.Abs(ratio-math.Exp(-1.0/50.0)) > 1e-9 {
		t.Errorf("neighbour ratio: got %f, want %f", ratio, math.Exp(-1.0/50.0))
	}
}
