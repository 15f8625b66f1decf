// Package ingest turns an uploaded resume document into structured candidate
// fields: raw text extraction, field parsing, and the on-disk file store.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedFormat marks files that are not PDF or DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrCorruptDocument marks files that could not be parsed at all.
	ErrCorruptDocument = errors.New("document could not be parsed")
)

// ExtractText pulls plain text out of a stored PDF or DOCX file.
func ExtractText(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return extractPDF(filePath)
	case ".docx":
		return extractDOCX(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
}

func extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content in PDF", ErrCorruptDocument)
	}
	return text, nil
}

func extractDOCX(filePath string) (string, error) {
	res, err := docconv.ConvertPath(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if strings.TrimSpace(res.Body) == "" {
		return "", fmt.Errorf("%w: no text content in DOCX", ErrCorruptDocument)
	}
	return res.Body, nil
}

// AllowedResume reports whether the filename carries an ingestible extension.
func AllowedResume(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// AllowedVideo reports whether the filename is an accepted recording format.
func AllowedVideo(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".webm", ".ogg":
		return true
	}
	return false
}
