// Package emitter builds and sends the single terminal response of a
// request.
package emitter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-rest-pipeline/internal/audit"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// DefaultProtocol is used in the status line when the request has none.
const DefaultProtocol = "HTTP/1.0"

const contentTypeJSON = "Content-Type: application/json"

// DefaultHeaders are sent when a response carries no header list at all.
var DefaultHeaders = []string{
	"Expires: Thu, 01 Jan 1970 00:00:00 GMT",
	"Cache-Control: no-store, no-cache, must-revalidate",
	"Cache-Control: post-check=0, pre-check=0",
	"Pragma: no-cache",
}

// Emitter turns response drafts into frames and records response summaries.
type Emitter struct {
	protocol string
	sink     audit.Sink
}

// New returns an Emitter. An empty protocol selects DefaultProtocol; a nil
// sink discards response records.
func New(protocol string, sink audit.Sink) *Emitter {
	if protocol == "" {
		protocol = DefaultProtocol
	}
	if sink == nil {
		sink = audit.Discard
	}
	return &Emitter{protocol: protocol, sink: sink}
}

// Build encodes resp for a request that arrived over protocol.
func (e *Emitter) Build(protocol string, resp models.Response) Frame {
	if protocol == "" {
		protocol = e.protocol
	}

	body, isJSON, err := encode(resp.Body, resp.Encoding)
	if err != nil {
		// unencodable bodies become a 500
		resp = models.ErrorInternal()
		body, isJSON, _ = encode(resp.Body, resp.Encoding)
	}

	headers := resp.Headers
	if headers == nil {
		headers = DefaultHeaders
	}
	headers = append([]string(nil), headers...)
	if isJSON && !hasHeader(headers, "Content-Type") {
		headers = append(headers, contentTypeJSON)
	}

	status := resp.StatusCode()
	return Frame{
		StatusLine: statusLine(protocol, status, resp.Message),
		Status:     status,
		Headers:    headers,
		Body:       body,
	}
}

func statusLine(protocol string, status int, message string) string {
	line := protocol + " " + strconv.Itoa(status)
	if message != "" {
		line += " " + message
	}
	return line
}

// encode returns the body bytes and whether they are JSON.
func encode(body any, encoding string) ([]byte, bool, error) {
	if encoding == "" || strings.EqualFold(encoding, models.EncodingJSON) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, true, fmt.Errorf("error encoding response body: %w", err)
		}
		return data, true, nil
	}

	switch v := body.(type) {
	case nil:
		return []byte{}, false, nil
	case []byte:
		return v, false, nil
	case string:
		return []byte(v), false, nil
	case fmt.Stringer:
		return []byte(v.String()), false, nil
	default:
		return []byte(fmt.Sprint(v)), false, nil
	}
}

func hasHeader(headers []string, name string) bool {
	for _, line := range headers {
		k, _, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(k), name) {
			return true
		}
	}
	return false
}

// statusText is used in response audit lines.
func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Unknown"
}
