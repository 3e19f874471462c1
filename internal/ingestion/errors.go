package ingestion

import (
	"errors"
	"fmt"
)

// ErrNotPDF is the cause when a file lacks the PDF header
var ErrNotPDF = errors.New("file is not a PDF")

// ExtractionErrorKind classifies why a resume produced no usable text
type ExtractionErrorKind string

const (
	// NoTextExtracted means the document opened but no page carried a text layer
	NoTextExtracted ExtractionErrorKind = "no_text_extracted"
	// Unreadable means the document could not be parsed as a PDF at all
	Unreadable ExtractionErrorKind = "unreadable"
)

// ExtractionError is returned when a resume yields no text
type ExtractionError struct {
	Kind  ExtractionErrorKind
	Pages int
	Cause error
}

func (e *ExtractionError) Error() string {
	switch e.Kind {
	case NoTextExtracted:
		return fmt.Sprintf("no text extracted from PDF (%d pages); the file may be scanned or image-only", e.Pages)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("unreadable PDF: %v", e.Cause)
		}
		return "unreadable PDF"
	}
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
