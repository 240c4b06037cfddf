// Package pdftext extracts plain text from PDF byte streams. It backs the
// renderer tests and the demo binary's output verification.
package pdftext

import (
	"bytes"
	"io"

	"github.com/ledongthuc/pdf"
)

// Text returns the concatenated plain text of every page in data.
func Text(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
