package ocr

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the upload formats accepted by the outer
// surfaces, without the leading dot.
var SupportedExtensions = []string{"pdf", "png", "jpg", "jpeg"}

// IsSupported reports whether name has one of the SupportedExtensions,
// compared case-insensitively.
func IsSupported(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// IsDocument reports whether path is a multi-page document that must be
// rasterized before recognition.
func IsDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
