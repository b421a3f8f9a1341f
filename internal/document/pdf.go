package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the text layer of a PDF page by page. Pages without
// a text layer (scanned images) contribute nothing; an OCR-capable
// TextExtractor can be swapped in behind the same interface.
type PDFExtractor struct{}

func NewPDFExtractor() PDFExtractor { return PDFExtractor{} }

// ExtractText returns the concatenated text of all pages, joined by newlines.
func (PDFExtractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not void the document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}
