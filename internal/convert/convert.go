// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDF content into plain text.
package convert

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Converter transforms raw PDF bytes into plain text.
type Converter interface {
	Convert(data []byte) (string, error)
}

// PDFConverter decodes PDFs in process using github.com/ledongthuc/pdf.
type PDFConverter struct{}

// Convert returns the visible text of every page in page order, one
// newline between pages, trailing whitespace trimmed. Decoding is all or
// nothing: any page error or library panic discards the whole result.
func (PDFConverter) Convert(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("decoding PDF: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("decoding PDF: empty content")
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", i, err)
		}
		b.WriteString(pageText)
		b.WriteByte('\n')
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace), nil
}

// ConvertFile reads the PDF at path and converts it with c.
func ConvertFile(c Converter, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	text, err := c.Convert(data)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", path, err)
	}
	return text, nil
}
