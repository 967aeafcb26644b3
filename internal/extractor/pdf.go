package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF walks pages 1..N in ascending order, joining the text items of
// each page with single spaces and pages with blank lines. Document info
// metadata is read best-effort and never fails the extraction.
func ExtractPDF(filename string, content []byte, opts Options) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, newError(filename, fmt.Errorf("open pdf: %w", err))
	}

	totalPages := reader.NumPage()
	pages := totalPages
	if opts.MaxPages > 0 && opts.MaxPages < pages {
		pages = opts.MaxPages
	}

	pageTexts := make([]string, 0, pages)
	for pageNum := 1; pageNum <= pages; pageNum++ {
		page := reader.Page(pageNum)
		if !page.V.IsNull() {
			pageTexts = append(pageTexts, pageText(page))
		}
		if opts.Progress != nil {
			opts.Progress(float64(pageNum) / float64(pages) * 100)
		}
	}

	return &Result{
		Text:      joinPages(pageTexts),
		Format:    FormatPDF,
		PageCount: totalPages,
		Meta:      readPDFMeta(reader),
	}, nil
}

func pageText(page pdf.Page) string {
	items := page.Content().Text
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item.S); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// joinPages separates page texts with a blank line, skipping empty pages.
func joinPages(pageTexts []string) string {
	nonEmpty := make([]string, 0, len(pageTexts))
	for _, t := range pageTexts {
		if strings.TrimSpace(t) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(t))
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}

// readPDFMeta pulls title/author/subject/creator from the Info dictionary.
// The pdf library panics on malformed values, so the whole read is guarded.
func readPDFMeta(reader *pdf.Reader) (meta *DocumentMeta) {
	defer func() {
		if r := recover(); r != nil {
			meta = nil
		}
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return nil
	}
	m := &DocumentMeta{
		Title:   infoString(info, "Title"),
		Author:  infoString(info, "Author"),
		Subject: infoString(info, "Subject"),
		Creator: infoString(info, "Creator"),
	}
	if *m == (DocumentMeta{}) {
		return nil
	}
	return m
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.RawString())
}
