package entity

// MaterialUploadResult reports the outcome of one file inside an upload
// batch. A failed file never aborts its siblings, so the batch response
// carries a per-file status.
type MaterialUploadResult struct {
	MaterialID    string  `json:"material_id,omitempty"`
	Filename      string  `json:"filename"`
	SourceFormat  string  `json:"source_format,omitempty"`
	Status        string  `json:"status"` // processed, empty, failed
	Error         string  `json:"error,omitempty"`
	TextLength    int     `json:"text_length"`
	PageCount     int     `json:"page_count,omitempty"`
	SlideCount    int     `json:"slide_count,omitempty"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
}

// MaterialUploadResponse summarizes a whole batch.
type MaterialUploadResponse struct {
	Subject   string                 `json:"subject"`
	Total     int                    `json:"total"`
	Processed int                    `json:"processed"`
	Failed    int                    `json:"failed"`
	Results   []MaterialUploadResult `json:"results"`
}

// MaterialDetail is a stored material with its extraction metadata.
type MaterialDetail struct {
	MaterialID    string  `json:"material_id"`
	Subject       string  `json:"subject"`
	Filename      string  `json:"filename"`
	SourceFormat  string  `json:"source_format"`
	Status        string  `json:"status"`
	ExtractedText string  `json:"extracted_text,omitempty"`
	TextLength    int     `json:"text_length"`
	PageCount     int     `json:"page_count,omitempty"`
	SlideCount    int     `json:"slide_count,omitempty"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
	DocTitle      string  `json:"doc_title,omitempty"`
	DocAuthor     string  `json:"doc_author,omitempty"`
}
