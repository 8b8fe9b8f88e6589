package report

import "io"

// Writer renders one run record to its configured destination.
// Implementations return the number of bytes written.
type Writer interface {
	Write(r *Report) (int, error)
}

// MultiWriter fans a report out to several Writers, for example the
// terminal and a file. It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers and returns the
// total bytes written.
func (m *MultiWriter) Write(r *Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(r)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter carries the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
