package pdfutil

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageTexts extracts the text layer of every page, in page order.
// Pages without a text layer (e.g. scans) yield an empty string rather
// than an error; only an unreadable document fails.
func PageTexts(raw []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return pages, nil
}
