package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a pixel rectangle. X2 and Y2 are exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect returns r as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// RegionNames lists the layout names accepted by NamedRegion. Scans of both
// sides of a card on one sheet are usually split top/bottom or left/right.
var RegionNames = []string{
	"top-half", "bottom-half", "left-half", "right-half",
	"top-left", "top-right", "bottom-left", "bottom-right",
	"center",
}

// NamedRegion resolves a layout name to a region of bounds.
func NamedRegion(bounds image.Rectangle, name string) (Region, error) {
	x0, y0 := bounds.Min.X, bounds.Min.Y
	w, h := bounds.Dx(), bounds.Dy()
	midX, midY := x0+w/2, y0+h/2
	maxX, maxY := bounds.Max.X, bounds.Max.Y

	switch name {
	case "top-half":
		return Region{x0, y0, maxX, midY}, nil
	case "bottom-half":
		return Region{x0, midY, maxX, maxY}, nil
	case "left-half":
		return Region{x0, y0, midX, maxY}, nil
	case "right-half":
		return Region{midX, y0, maxX, maxY}, nil
	case "top-left":
		return Region{x0, y0, midX, midY}, nil
	case "top-right":
		return Region{midX, y0, maxX, midY}, nil
	case "bottom-left":
		return Region{x0, midY, midX, maxY}, nil
	case "bottom-right":
		return Region{midX, midY, maxX, maxY}, nil
	case "center":
		// Center 50% of the image
		qW, qH := w/4, h/4
		return Region{x0 + qW, y0 + qH, maxX - qW, maxY - qH}, nil
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}
}

// Crop returns the part of img inside r. A positive scale other than 1
// resizes the result; low-resolution phone photos often recognize better
// when enlarged before binarization.
func Crop(img image.Image, r Region, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	if !r.Rect().In(bounds) || r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, r.Rect())

	if scale > 0 && scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f leaves no pixels", scale)
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}
	return cropped, nil
}
