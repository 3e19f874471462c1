// Package ingestion turns uploaded resume documents into plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText returns the text of every page of a PDF, in page order, trimmed.
// Pages without a text layer contribute nothing. An empty result is an ExtractionError.
func ExtractPDFText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", &ExtractionError{Kind: Unreadable, Cause: fmt.Errorf("empty file")}
	}

	// the pdf library panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Kind: Unreadable, Cause: fmt.Errorf("pdf parser: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: Unreadable, Cause: err}
	}

	numPages := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// a single broken page shouldn't discard the rest of the resume
			continue
		}
		sb.WriteString(pageText)
	}

	text = strings.TrimSpace(sb.String())
	if text == "" {
		return "", &ExtractionError{Kind: NoTextExtracted, Pages: numPages}
	}
	return text, nil
}

// ExtractPDFFile reads a PDF from disk and extracts its text.
// Files without the PDF header fail with an Unreadable error wrapping ErrNotPDF.
func ExtractPDFFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if !IsPDF(data) {
		return "", &ExtractionError{Kind: Unreadable, Cause: ErrNotPDF}
	}
	return ExtractPDFText(data)
}

// IsPDF reports whether data starts with the PDF magic header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
