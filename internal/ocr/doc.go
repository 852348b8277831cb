// Package ocr turns identity-document images and PDFs into text.
//
// The package is built around two capabilities that are injected into a
// Pipeline:
//
//   - Recognizer: given a pixel buffer, produce text. The production
//     implementation is Tesseract (via gosseract/v2).
//   - Rasterizer: given a document path, report its page count and render a
//     single page to an image file at a requested DPI. The production
//     implementation counts pages with pdfcpu and renders with pdftoppm.
//
// Tests substitute deterministic fakes for both.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-hin tesseract-ocr-mar
//   - macOS: brew install tesseract tesseract-lang
//
// PDF input additionally needs pdftoppm (poppler-utils).
//
// # Languages and Layout
//
// Recognition runs with English, Hindi and Marathi enabled together and with
// the page segmentation mode that treats the image as one uniform block of
// text. Identity cards mix scripts on the same line, and their fields are
// laid out as a single block rather than columns.
//
// # Temporary Files
//
// Document pages are rendered one at a time into the pipeline's scratch
// directory under a UUID-based name. Each page file is removed before the
// next page is rendered, whether or not recognition of that page succeeded.
//
// # Error Handling
//
// Images that cannot be decoded surface as *imaging.DecodeError. OCR and
// rendering failures surface as *RecognitionError carrying the page number
// (0 for single images). The first failing page aborts the document.
package ocr
