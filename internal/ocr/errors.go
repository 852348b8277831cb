package ocr

import "fmt"

// RecognitionError reports a failure to produce text for an image or a
// document page.
type RecognitionError struct {
	// Page is the 1-based document page, or 0 for a standalone image.
	Page int
	Err  error
}

func (e *RecognitionError) Error() string {
	if e.Page == 0 {
		return fmt.Sprintf("recognition failed: %v", e.Err)
	}
	return fmt.Sprintf("recognition failed on page %d: %v", e.Page, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}
