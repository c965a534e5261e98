package constants

import "strings"

// AllowedExtensions holds the file extensions accepted by batch ingestion.
// Token payloads arrive as JSON documents produced by the OCR collaborator.
var AllowedExtensions = map[string]struct{}{
	"json": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
