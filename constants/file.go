package constants

import "strings"

// DocumentFormat is the canonical format tag for an uploaded document.
type DocumentFormat string

const (
	TEXT DocumentFormat = "TEXT"
	PDF  DocumentFormat = "PDF"
	DOCX DocumentFormat = "DOCX"
)

// AllowedExtensions holds the file extensions accepted for analysis uploads.
var AllowedExtensions = map[string]struct{}{
	"txt":  {},
	"md":   {},
	"pdf":  {},
	"docx": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a (possibly dotted, mixed-case) extension to its
// DocumentFormat. Returns "" for extensions we do not handle.
func MapExtToFormat(ext string) DocumentFormat {
	switch NormalizeExt(ext) {
	case "txt", "md", "text":
		return TEXT
	case "pdf":
		return PDF
	case "docx":
		return DOCX
	default:
		return ""
	}
}
