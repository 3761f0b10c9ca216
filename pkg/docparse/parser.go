package docparse

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MimePDF is the only binary format the importer understands. Anything
// else is treated as plain text.
const MimePDF = "application/pdf"

// ExtractText turns an uploaded document into prompt-ready text. PDFs
// are parsed page by page; every other content type is passed through
// verbatim as long as it is valid UTF-8.
func ExtractText(data []byte, contentType string) (string, error) {
	if strings.HasPrefix(contentType, MimePDF) {
		return extractPDF(data)
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("docparse: content type %q is not valid UTF-8 text", contentType)
	}
	return string(data), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("docparse: failed to open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("docparse: failed to read page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("docparse: pdf contained no extractable text")
	}
	return out, nil
}
