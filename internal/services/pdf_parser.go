package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/interview-coach/internal/models"
)

type PDFParserService interface {
	ExtractText(filepath string) (string, error)
	ExtractTextFromBytes(buf []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return extractPages(r)
}

func (p *pdfParserService) ExtractTextFromBytes(buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", fmt.Errorf("empty PDF buffer")
	}

	r, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	return extractPages(r)
}

func extractPages(r *pdf.Reader) (string, error) {
	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// skip unreadable pages
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

// ToStructuredResume splits extracted text into trimmed, non-blank lines.
func ToStructuredResume(rawText string) models.ResumeDocument {
	lines := []string{}
	for _, line := range strings.Split(rawText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return models.ResumeDocument{
		RawText: rawText,
		Lines:   lines,
	}
}
