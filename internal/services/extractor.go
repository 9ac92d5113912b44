package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"docuseek/internal/models"
)

type PDFExtractorService interface {
	// ExtractPages returns one entry per page in natural order, content
	// whitespace-trimmed. Blank and image-only pages come back with empty
	// content rather than being dropped, so page numbering stays contiguous.
	ExtractPages(filePath string) ([]models.PageText, error)
}

type pdfExtractorService struct{}

func NewPDFExtractorService() PDFExtractorService {
	return &pdfExtractorService{}
}

// ExtractPages implements PDFExtractorService.
func (p *pdfExtractorService) ExtractPages(filePath string) ([]models.PageText, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF: %v", ErrMalformedDocument, err)
	}
	defer f.Close()

	totalPage := r.NumPage()
	pages := make([]models.PageText, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)

		var text string
		if !page.V.IsNull() {
			// Extraction errors on a single page are treated as an empty
			// page; other pages must still be indexed.
			if extracted, err := page.GetPlainText(nil); err == nil {
				text = extracted
			}
		}

		pages = append(pages, models.PageText{
			Number:  pageIndex,
			Content: CleanText(text),
		})
	}

	return pages, nil
}

// CleanText trims and collapses blank lines in extracted page text.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
