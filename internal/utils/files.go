package utils

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectFileType guesses a MIME type from the filename extension. When the
// extension is unknown the lowercased extension itself is returned, so the
// stored type is never empty for named files.
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return ext
}

// DetectImageMimeType guesses a MIME type for an image attachment and falls
// back to image/jpeg when the guess is missing or not an image type.
func DetectImageMimeType(filename string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if t == "" || !strings.HasPrefix(t, "image/") {
		return "image/jpeg"
	}
	return t
}
