package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	textRunRe   = regexp.MustCompile(`<a:t[^>]*>(.*?)</a:t>`)
)

// ExtractPPTX pulls the <a:t> text runs out of every slide XML. Runs within
// a slide are joined with spaces and slides with blank lines. SlideCount is
// the number of slide entries in the archive, including slides that hold no
// text.
func ExtractPPTX(filename string, content []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, newError(filename, fmt.Errorf("open pptx container: %w", err))
	}

	type slideEntry struct {
		num  int
		file *zip.File
	}
	var slides []slideEntry
	for _, file := range zr.File {
		m := slideNameRe.FindStringSubmatch(file.Name)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		slides = append(slides, slideEntry{num: num, file: file})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	slideTexts := make([]string, 0, len(slides))
	for _, slide := range slides {
		rc, err := slide.file.Open()
		if err != nil {
			return nil, newError(filename, fmt.Errorf("open slide %d: %w", slide.num, err))
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, newError(filename, fmt.Errorf("read slide %d: %w", slide.num, err))
		}
		slideTexts = append(slideTexts, slideText(data))
	}

	return &Result{
		Text:       joinPages(slideTexts),
		Format:     FormatPPTX,
		SlideCount: len(slides),
	}, nil
}

func slideText(data []byte) string {
	matches := textRunRe.FindAllSubmatch(data, -1)
	runs := make([]string, 0, len(matches))
	for _, m := range matches {
		if run := strings.TrimSpace(unescapeXML(string(m[1]))); run != "" {
			runs = append(runs, run)
		}
	}
	return strings.Join(runs, " ")
}

var xmlEntityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#39;", "'",
)

func unescapeXML(s string) string {
	return xmlEntityReplacer.Replace(s)
}
