// Package extractor turns uploaded study materials (PDF, DOCX, PPTX, images,
// plain text) into normalized plain text plus format metadata.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies which extractor handles a file.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatPPTX  Format = "pptx"
	FormatImage Format = "image"
	FormatVideo Format = "video"
	FormatText  Format = "text"
)

// DocumentMeta carries best-effort PDF document information.
type DocumentMeta struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Subject string `json:"subject,omitempty"`
	Creator string `json:"creator,omitempty"`
}

// Result is the normalized output of one extraction.
// Text is always set, possibly empty; callers treat empty text as a soft
// failure, not an error.
type Result struct {
	Text       string        `json:"text"`
	Format     Format        `json:"format"`
	PageCount  int           `json:"page_count,omitempty"`
	SlideCount int           `json:"slide_count,omitempty"`
	Confidence float64       `json:"confidence,omitempty"`
	Meta       *DocumentMeta `json:"meta,omitempty"`
}

// Error wraps an extractor's underlying failure with the file it came from.
type Error struct {
	Filename string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(filename string, cause error) *Error {
	return &Error{Filename: filename, Cause: cause}
}

// ErrUnsupported is returned when a file classifies to a format that has no
// text extractor (currently video).
var ErrUnsupported = fmt.Errorf("no text extractor for this format")

// allowedMIME maps upload allow-list MIME types to formats.
var allowedMIME = map[string]Format{
	"application/pdf": FormatPDF,
	"image/jpeg":      FormatImage,
	"image/png":       FormatImage,
	"image/heic":      FormatImage,
	"video/mp4":       FormatVideo,
	"video/quicktime": FormatVideo,
	"application/msword": FormatDOCX,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": FormatPPTX,
	"text/plain": FormatText,
}

var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".doc":  FormatDOCX,
	".docx": FormatDOCX,
	".pptx": FormatPPTX,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".png":  FormatImage,
	".heic": FormatImage,
	".mp4":  FormatVideo,
	".mov":  FormatVideo,
	".txt":  FormatText,
	".md":   FormatText,
}

// Classify resolves a file to exactly one format. Precedence: declared MIME
// type against the allow-list, then the filename extension, then a byte-scan
// heuristic that accepts plain text. Every call site (upload validation and
// extractor dispatch) uses this one function.
func Classify(filename, mimeType string, head []byte) (Format, error) {
	if mt := normalizeMIME(mimeType); mt != "" {
		if f, ok := allowedMIME[mt]; ok {
			return f, nil
		}
	}
	if f, ok := extFormats[strings.ToLower(filepath.Ext(filename))]; ok {
		return f, nil
	}
	if IsTextContent(head) {
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported file type %q for %s", mimeType, filename)
}

func normalizeMIME(mimeType string) string {
	mt := strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// IsTextContent reports whether the first 512 bytes of content look like
// plain text: no NUL byte, and more than 95% of bytes printable ASCII or
// UTF-8 continuation/lead bytes.
func IsTextContent(head []byte) bool {
	if len(head) == 0 {
		return false
	}
	if len(head) > 512 {
		head = head[:512]
	}
	printable := 0
	for _, b := range head {
		if b == 0x00 {
			return false
		}
		switch {
		case b == '\n' || b == '\r' || b == '\t':
			printable++
		case b >= 0x20 && b < 0x7f:
			printable++
		case b >= 0x80: // UTF-8 lead or continuation byte
			printable++
		}
	}
	return float64(printable)/float64(len(head)) > 0.95
}

// ProgressFunc reports extraction progress as a 0-100 percentage.
type ProgressFunc func(percent float64)

// Options tunes a single extraction.
type Options struct {
	MaxPages int          // PDF only; 0 means all pages
	Progress ProgressFunc // optional
}

// Dispatcher routes files to format extractors.
type Dispatcher struct {
	ocr *OCR
}

// NewDispatcher returns a Dispatcher using the given OCR engine. A nil ocr
// disables image extraction.
func NewDispatcher(ocr *OCR) *Dispatcher {
	return &Dispatcher{ocr: ocr}
}

// Extract classifies content and runs the matching extractor. A failure in
// one file never aborts sibling files: the per-file error is returned and the
// caller decides whether to continue.
func (d *Dispatcher) Extract(filename, mimeType string, content []byte, opts Options) (*Result, error) {
	format, err := Classify(filename, mimeType, content)
	if err != nil {
		return nil, newError(filename, err)
	}
	switch format {
	case FormatPDF:
		return ExtractPDF(filename, content, opts)
	case FormatDOCX:
		return ExtractDOCX(filename, content)
	case FormatPPTX:
		return ExtractPPTX(filename, content)
	case FormatImage:
		if d.ocr == nil {
			return nil, newError(filename, fmt.Errorf("ocr engine not configured"))
		}
		return d.ocr.Extract(filename, content, opts.Progress)
	case FormatText:
		return ExtractText(content), nil
	default:
		return nil, newError(filename, ErrUnsupported)
	}
}
