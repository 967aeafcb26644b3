package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinPages(t *testing.T) {
	text := joinPages([]string{"Page1 text", "Page2 text", "Page3 text"})
	assert.Equal(t, "Page1 text\n\nPage2 text\n\nPage3 text", text)
}

func TestJoinPagesSkipsEmptyPages(t *testing.T) {
	text := joinPages([]string{"First", "", "  ", "Last"})
	assert.Equal(t, "First\n\nLast", text)
}

func TestJoinPagesAllEmpty(t *testing.T) {
	assert.Equal(t, "", joinPages([]string{"", "   "}))
	assert.Equal(t, "", joinPages(nil))
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	_, err := ExtractPDF("junk.pdf", []byte("%PDF-not-really"), Options{})
	assert.Error(t, err)
}
