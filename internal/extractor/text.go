package extractor

import "strings"

// ExtractText trims the raw content. No structural parsing.
func ExtractText(content []byte) *Result {
	return &Result{
		Text:   strings.TrimSpace(string(content)),
		Format: FormatText,
	}
}
