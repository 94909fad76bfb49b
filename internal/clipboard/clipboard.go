// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyError reports a failed clipboard write. The deck that was being
// copied is unaffected.
type CopyError struct {
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy to clipboard: %v", e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

type Writer struct {
	writeFunc func(text string) error
}

func NewWriter() *Writer {
	return &Writer{
		writeFunc: clipboard.WriteAll,
	}
}

// NewWriterFunc creates a Writer backed by a custom write function.
func NewWriterFunc(writeFunc func(text string) error) *Writer {
	return &Writer{
		writeFunc: writeFunc,
	}
}

func (writer *Writer) Copy(text string) error {
	if err := writer.writeFunc(text); err != nil {
		return &CopyError{Err: err}
	}
	return nil
}
