package report

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// Inspect verifies that converted bytes are a readable PDF with at least
// one page. Office converters can exit zero while emitting an empty or
// truncated document; this catches that before the file reaches an archive.
func Inspect(pdf []byte) error {
	if len(pdf) == 0 {
		return fmt.Errorf("converted document is empty")
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return fmt.Errorf("converted document is not a readable pdf: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return fmt.Errorf("converted pdf has no pages")
	}
	return nil
}
