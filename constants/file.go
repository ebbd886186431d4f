package constants

import (
	"path/filepath"
	"strings"
)

// AllowedExtensions holds the file extensions accepted for upload to the
// storage collaborator.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"txt":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Supported reports whether the path has an extension we can upload.
func Supported(path string) bool {
	_, ok := AllowedExtensions[NormalizeExt(filepath.Ext(path))]
	return ok
}

// MIMEForPath maps a file path to the media type sent to the collaborator.
// Legal filings are overwhelmingly PDF, so that is the fallback.
func MIMEForPath(path string) string {
	switch NormalizeExt(filepath.Ext(path)) {
	case "txt":
		return "text/plain"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	default:
		return "application/pdf"
	}
}
