package models

import "net/http"

// Response encodings understood by the emitter.
const (
	EncodingJSON = "json"
	EncodingRaw  = "raw"
)

// Envelope status values.
const (
	StatusOk    = "ok"
	StatusMulti = "multi"
	StatusError = "error"
)

// Standard error messages.
const (
	MessageUnauthorized       = "Unauthorized"
	MessageUnsupportedMethod  = "Unsupported method"
	MessageNoRoute            = "No matching route found"
	MessageInternalError      = "Internal Server Error"
	MessageServiceUnavailable = "Service Unavailable"
)

// Response is a per-call response draft. Each stage returns a new value
// instead of mutating shared state.
type Response struct {
	// Status is the HTTP status code. Zero means 200.
	Status int `json:"-"`

	// Message is an optional human-readable reason appended to the status line.
	Message string `json:"-"`

	// Headers is the ordered list of "Name: value" lines; duplicates are
	// allowed. A nil list selects the default cache-busting set.
	Headers []string `json:"-"`

	// Body is the payload. It is JSON-encoded unless Encoding says otherwise.
	Body any `json:"-"`

	// Encoding is "json" (also when empty) or any other value for raw passthrough.
	Encoding string `json:"-"`
}

// StatusCode returns the effective status code.
func (r Response) StatusCode() int {
	if r.Status == 0 {
		return http.StatusOK
	}
	return r.Status
}

// WithHeader returns a copy of r with one more header line appended.
func (r Response) WithHeader(line string) Response {
	headers := make([]string, 0, len(r.Headers)+1)
	headers = append(headers, r.Headers...)
	r.Headers = append(headers, line)
	return r
}

// Envelope is the standardized response body shape.
type Envelope map[string]any

// EnvelopeStatus returns the "status" member of the envelope.
func (e Envelope) EnvelopeStatus() string {
	s, _ := e["status"].(string)
	return s
}

// StandardStatus builds a response whose body is {status: status, ...info}.
// Keys of info win, including "status". A zero code leaves the default
// status in place.
func StandardStatus(status string, info map[string]any, code int) Response {
	body := Envelope{"status": status}
	for k, v := range info {
		body[k] = v
	}
	return Response{Status: code, Body: body}
}

// StandardOk builds a {status:"ok"} response.
func StandardOk(info map[string]any, code int) Response {
	return StandardStatus(StatusOk, info, code)
}

// StandardMulti builds a {status:"multi"} response, 207 unless code is set.
func StandardMulti(info map[string]any, code int) Response {
	if code == 0 {
		code = http.StatusMultiStatus
	}
	return StandardStatus(StatusMulti, info, code)
}

// StandardError builds a {status:"error", error: msg} response.
func StandardError(msg string, code int) Response {
	return Response{Status: code, Body: Envelope{"status": StatusError, "error": msg}}
}

func ErrorUnauthorized() Response {
	return StandardError(MessageUnauthorized, http.StatusUnauthorized)
}

func ErrorUnsupportedMethod() Response {
	return StandardError(MessageUnsupportedMethod, http.StatusMethodNotAllowed)
}

func ErrorNotFound() Response {
	return StandardError(MessageNoRoute, http.StatusNotFound)
}

func ErrorInternal() Response {
	return StandardError(MessageInternalError, http.StatusInternalServerError)
}

func ErrorServiceUnavailable() Response {
	return StandardError(MessageServiceUnavailable, http.StatusInternalServerError)
}
