package extractor

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docxDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Photosynthesis converts light into </w:t></w:r><w:r><w:t>chemical energy.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Chlorophyll absorbs red and blue light.</w:t></w:r></w:p>
    <w:p></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Pigment</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Color</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Chlorophyll a</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Blue-green</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestExtractDOCX(t *testing.T) {
	content := buildZip(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   docxDocumentXML,
	})

	res, err := ExtractDOCX("bio.docx", content)
	require.NoError(t, err)
	assert.Equal(t, FormatDOCX, res.Format)
	assert.Contains(t, res.Text, "Photosynthesis converts light into chemical energy.")
	assert.Contains(t, res.Text, "Chlorophyll absorbs red and blue light.")
	assert.Contains(t, res.Text, "Pigment | Color")
	assert.Contains(t, res.Text, "Chlorophyll a | Blue-green")
}

func TestExtractDOCXHTML(t *testing.T) {
	content := buildZip(t, map[string]string{
		"word/document.xml": `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>a &lt; b</w:t></w:r></w:p></w:body></w:document>`,
	})

	html, err := ExtractDOCXHTML("math.docx", content)
	require.NoError(t, err)
	assert.Equal(t, "<p>a &lt; b</p>\n", html)
}

func TestExtractDOCXMissingDocument(t *testing.T) {
	content := buildZip(t, map[string]string{"other.xml": "<x/>"})
	_, err := ExtractDOCX("broken.docx", content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract text from broken.docx")
}

func TestExtractDOCXNotAZip(t *testing.T) {
	_, err := ExtractDOCX("corrupt.docx", []byte("this is not a zip archive"))
	assert.Error(t, err)
}

func TestExtractPPTX(t *testing.T) {
	content := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml":  `<p:sld><a:t>Cell Biology</a:t><a:t>Introduction</a:t></p:sld>`,
		"ppt/slides/slide2.xml":  `<p:sld><a:t>Mitochondria &amp; ATP</a:t></p:sld>`,
		"ppt/slides/slide10.xml": `<p:sld><a:t>Summary</a:t></p:sld>`,
		"ppt/notesSlides/notesSlide1.xml": `<p:notes><a:t>speaker notes ignored</a:t></p:notes>`,
	})

	res, err := ExtractPPTX("cells.pptx", content)
	require.NoError(t, err)
	assert.Equal(t, FormatPPTX, res.Format)
	assert.Equal(t, 3, res.SlideCount)
	// Slides sorted numerically: 1, 2, 10 — not lexicographic.
	assert.Equal(t, "Cell Biology Introduction\n\nMitochondria & ATP\n\nSummary", res.Text)
	assert.NotContains(t, res.Text, "speaker notes")
}

func TestExtractPPTXCountsTextlessSlides(t *testing.T) {
	content := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": `<p:sld><a:t>Only slide with text</a:t></p:sld>`,
		"ppt/slides/slide2.xml": `<p:sld><p:pic/></p:sld>`,
	})

	res, err := ExtractPPTX("pics.pptx", content)
	require.NoError(t, err)
	assert.Equal(t, 2, res.SlideCount)
	assert.Equal(t, "Only slide with text", res.Text)
}
