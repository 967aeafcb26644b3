package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ExtractDOCX reads word/document.xml from the OOXML container and flattens
// paragraphs, runs, and tables into plain text.
func ExtractDOCX(filename string, content []byte) (*Result, error) {
	doc, err := readDocumentXML(content)
	if err != nil {
		return nil, newError(filename, err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		if text := paragraphText(para); text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}
	}
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				var cb strings.Builder
				for _, para := range cell.Paragraphs {
					cb.WriteString(paragraphText(para))
					cb.WriteString(" ")
				}
				cells = append(cells, strings.TrimSpace(cb.String()))
			}
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return &Result{
		Text:   strings.TrimSpace(b.String()),
		Format: FormatDOCX,
	}, nil
}

// ExtractDOCXHTML renders the document as minimal HTML, one <p> per
// paragraph. Used for formatted display, not for quiz generation.
func ExtractDOCXHTML(filename string, content []byte) (string, error) {
	doc, err := readDocumentXML(content)
	if err != nil {
		return "", newError(filename, err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		text := paragraphText(para)
		if text == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(htmlEscape(text))
		b.WriteString("</p>\n")
	}
	return b.String(), nil
}

func readDocumentXML(content []byte) (*wordDocument, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}
	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		var doc wordDocument
		if err := xml.Unmarshal(stripNamespaces(data), &doc); err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("word/document.xml not found in archive")
}

type wordDocument struct {
	Body wordBody `xml:"body"`
}

type wordBody struct {
	Paragraphs []wordParagraph `xml:"p"`
	Tables     []wordTable     `xml:"tbl"`
}

type wordParagraph struct {
	Runs []wordRun `xml:"r"`
}

type wordRun struct {
	Texts  []wordText `xml:"t"`
	Tabs   []struct{} `xml:"tab"`
	Breaks []struct{} `xml:"br"`
}

type wordText struct {
	Content string `xml:",chardata"`
}

type wordTable struct {
	Rows []wordTableRow `xml:"tr"`
}

type wordTableRow struct {
	Cells []wordTableCell `xml:"tc"`
}

type wordTableCell struct {
	Paragraphs []wordParagraph `xml:"p"`
}

func paragraphText(para wordParagraph) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Texts {
			b.WriteString(t.Content)
		}
		for range run.Tabs {
			b.WriteString("\t")
		}
		for range run.Breaks {
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String())
}

var (
	xmlnsAttrRe = regexp.MustCompile(`\s+xmlns[^=]*="[^"]*"`)
	nsPrefixRe  = regexp.MustCompile(`<(/?)(\w+):`)
)

// stripNamespaces drops xmlns attributes and tag prefixes so the OOXML can be
// unmarshalled with plain element names.
func stripNamespaces(data []byte) []byte {
	data = xmlnsAttrRe.ReplaceAll(data, nil)
	return nsPrefixRe.ReplaceAll(data, []byte("<$1"))
}

func htmlEscape(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	).Replace(s)
}
