package render

import (
	"bytes"
	"context"
	"fmt"
)

const pdfMagic = "%PDF"

// Output is a finished render: the PDF bytes plus reporting metadata.
type Output struct {
	Bytes []byte
	Meta  Meta
}

// Meta describes how an Output was produced.
type Meta struct {
	Backend        string `json:"backend"`
	ByteLength     int    `json:"byteLength"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}

// ValidatePDF checks that data is a plausible PDF stream: non-empty and
// starting with the %PDF magic header.
func ValidatePDF(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty byte stream", ErrInvalidOutput)
	}
	if !bytes.HasPrefix(data, []byte(pdfMagic)) {
		return fmt.Errorf("%w: missing %s header", ErrInvalidOutput, pdfMagic)
	}
	return nil
}

// Assemble invokes a single backend for doc, validates the byte stream,
// and packages it with metadata. Selection between backends is the
// Selector's job; Assemble never falls back on its own.
func Assemble(ctx context.Context, b Backend, doc Document) (Output, error) {
	data, err := b.Render(ctx, doc)
	if err != nil {
		return Output{}, err
	}
	if err := ValidatePDF(data); err != nil {
		return Output{}, err
	}
	return Output{
		Bytes: data,
		Meta:  Meta{Backend: b.Name(), ByteLength: len(data)},
	}, nil
}
