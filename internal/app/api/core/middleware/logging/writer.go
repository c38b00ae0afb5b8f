package logging

import (
	"net/http"
)

// writerWrapper wraps a http.ResponseWriter and tracks the status code and the number of written bytes.
type writerWrapper struct {
	http.ResponseWriter

	StatusCode   int
	WrittenBytes int64
	wroteHeader  bool
}

func newWriterWrapper(w http.ResponseWriter) *writerWrapper {
	return &writerWrapper{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

// WriteHeader records the status code. Only the first call is recorded.
func (w *writerWrapper) WriteHeader(code int) {
	if !w.wroteHeader {
		w.StatusCode = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write counts the written bytes.
func (w *writerWrapper) Write(data []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(data)
	w.WrittenBytes += int64(n)
	return n, err
}

// Unwrap returns the wrapped writer, used by http.ResponseController.
func (w *writerWrapper) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
