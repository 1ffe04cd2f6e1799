package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// TeeWriter writes to every underlying writer, even when some of them fail.
// The returned count is the sum of bytes written by the healthy writers.
type TeeWriter struct {
	Writers []io.Writer
}

func NewTeeWriter(writers ...io.Writer) *TeeWriter {
	return &TeeWriter{Writers: writers}
}

func (tw *TeeWriter) Write(p []byte) (n int, err error) {
	for _, w := range tw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		n += written
	}
	return n, err
}
