package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// commandRunner executes an external command and returns its stdout. Swapped
// out in tests.
type commandRunner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// OCR extracts text from images by shelling out to the tesseract binary.
// Each recognition spins up a fresh tesseract process over a throwaway temp
// file, so there is no state shared between calls.
type OCR struct {
	lang string
	run  commandRunner
}

// NewOCR returns an OCR engine for the given tesseract language (defaults to
// "eng").
func NewOCR(lang string) *OCR {
	if lang == "" {
		lang = "eng"
	}
	return &OCR{lang: lang, run: execRunner}
}

// Available reports whether the tesseract binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("tesseract")
	return err == nil
}

// Extract runs tesseract in TSV mode and returns the recognized text plus a
// 0-100 confidence averaged over recognized words.
func (o *OCR) Extract(filename string, content []byte, progress ProgressFunc) (*Result, error) {
	if progress != nil {
		progress(0)
	}

	tmp, err := os.CreateTemp("", "passai-ocr-*"+imageExt(filename))
	if err != nil {
		return nil, newError(filename, fmt.Errorf("create temp image: %w", err))
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, newError(filename, fmt.Errorf("write temp image: %w", err))
	}
	tmp.Close()

	out, err := o.run("tesseract", tmp.Name(), "stdout", "-l", o.lang, "--psm", "3", "tsv")
	if err != nil {
		return nil, newError(filename, fmt.Errorf("tesseract: %w", err))
	}

	text, confidence := parseTSV(string(out))
	if progress != nil {
		progress(100)
	}
	return &Result{
		Text:       text,
		Format:     FormatImage,
		Confidence: confidence,
	}, nil
}

// BatchFile is one entry of an OCR batch.
type BatchFile struct {
	Filename string
	Content  []byte
}

// ExtractBatch recognizes files one at a time, in order. OCR workers are
// memory-heavy, so the batch is deliberately sequential. A file that fails
// recognition is replaced with an empty zero-confidence result instead of
// aborting the remaining files. Overall progress blends completed files with
// the current file's own progress.
func (o *OCR) ExtractBatch(files []BatchFile, progress ProgressFunc) []*Result {
	results := make([]*Result, len(files))
	total := float64(len(files))
	for i, file := range files {
		completed := float64(i)
		res, err := o.Extract(file.Filename, file.Content, func(filePercent float64) {
			if progress != nil {
				progress(completed/total*100 + filePercent/total)
			}
		})
		if err != nil {
			results[i] = &Result{Text: "", Format: FormatImage, Confidence: 0}
			continue
		}
		results[i] = res
	}
	if progress != nil {
		progress(100)
	}
	return results
}

// parseTSV reads tesseract TSV output. Level 5 rows are words; conf is -1
// for non-word rows. Words on the same line are joined with spaces, lines
// with newlines.
func parseTSV(out string) (string, float64) {
	var (
		b        strings.Builder
		confSum  float64
		words    int
		lastLine string
	)
	for _, row := range strings.Split(out, "\n") {
		cols := strings.Split(row, "\t")
		if len(cols) < 12 || cols[0] != "5" {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		word := strings.TrimSpace(cols[11])
		if word == "" {
			continue
		}
		lineKey := strings.Join(cols[1:5], ":")
		if words > 0 {
			if lineKey == lastLine {
				b.WriteString(" ")
			} else {
				b.WriteString("\n")
			}
		}
		lastLine = lineKey
		b.WriteString(word)
		confSum += conf
		words++
	}
	if words == 0 {
		return "", 0
	}
	return b.String(), confSum / float64(words)
}

func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".heic":
		return ext
	default:
		return ".png"
	}
}
