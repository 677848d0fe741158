package emitter

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

// Frame is a fully built response: status line, ordered header lines and
// the encoded body.
type Frame struct {
	StatusLine string
	Status     int
	Headers    []string
	Body       []byte
}

// Header returns the value of the first header line called name.
func (f Frame) Header(name string) string {
	for _, line := range f.Headers {
		k, v, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// WriteHTTP writes the frame through a net/http response writer. The status
// message is not transmitted: net/http derives its own reason phrase.
func (f Frame) WriteHTTP(w http.ResponseWriter) error {
	h := w.Header()
	for _, line := range f.Headers {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h.Add(strings.TrimSpace(k), strings.TrimSpace(v))
	}

	w.WriteHeader(f.Status)
	_, err := w.Write(f.Body)
	return err
}

// WriteTo writes the frame as raw HTTP/1.x wire text.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString(f.StatusLine)
	buf.WriteString("\r\n")
	for _, line := range f.Headers {
		buf.WriteString(line)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(f.Body)

	return buf.WriteTo(w)
}
