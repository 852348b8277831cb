// Package imaging decodes scanned identity documents and conditions them for OCR.
//
// This package turns whatever the caller hands in (a file path or a byte
// stream holding PNG, JPEG, GIF, TIFF, BMP or WebP data) into an image.Image,
// and converts that image into a binarized page that Tesseract reads well.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner.
//
// # Binarization
//
// Binarize runs a fixed three-step pipeline:
//
//  1. Grayscale conversion using ITU-R BT.601 luminance weights
//     (0.299*R + 0.587*G + 0.114*B)
//  2. 5x5 Gaussian blur to suppress scan noise
//  3. Adaptive thresholding against a Gaussian-weighted local mean over a
//     31x31 neighbourhood, offset by 2
//
// Thresholding is local rather than global because photographed cards and
// scanned pages are rarely lit evenly: a single cut-off would wash out one
// side of the page and blacken the other.
//
// # Orientation
//
// Photographs taken with phones frequently carry an EXIF orientation tag
// instead of rotated pixels. Decode and Load honour that tag so that text
// reaches the OCR engine upright.
//
// # Regions
//
// Crop cuts a rectangle out of an image and optionally rescales it.
// NamedRegion maps layout names such as "top-half" to rectangles, which is
// how the two sides of a card photocopied onto one sheet are separated.
//
// # Error Handling
//
// Decoding failures are reported as *DecodeError, which records the source
// and wraps the underlying cause. Binarize itself has no error path: any
// decodable image, including an empty one, produces an output of the same
// dimensions.
//
// # Thread Safety
//
// All functions are stateless and can be called concurrently.
package imaging
