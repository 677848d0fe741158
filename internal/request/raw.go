package request

import (
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

// RawContext is the inbound request as delivered by the host transport,
// before any normalization.
type RawContext struct {
	Method   string
	Protocol string

	// PathInfo is the request path. RedirectURL is used when it is empty,
	// e.g. behind a rewriting front end.
	PathInfo    string
	RedirectURL string

	QueryString string

	// Headers keeps the header names as the transport spelled them.
	Headers models.Headers

	// Authorization is the authorization value the transport extracted, if
	// any. It is independent of Headers.
	Authorization string

	ContentType   string
	ContentLength int64
	Body          io.Reader

	RemoteAddr string
	RequestURI string
}

// FromHTTP adapts a net/http request.
func FromHTTP(r *http.Request) RawContext {
	headers := make(models.Headers, len(r.Header)+1)
	for name, values := range r.Header {
		headers[name] = values
	}
	if r.Host != "" {
		headers["Host"] = []string{r.Host}
	}

	redirect, _, _ := strings.Cut(r.RequestURI, "?")

	return RawContext{
		Method:        r.Method,
		Protocol:      r.Proto,
		PathInfo:      r.URL.Path,
		RedirectURL:   redirect,
		QueryString:   r.URL.RawQuery,
		Headers:       headers,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		ContentLength: r.ContentLength,
		Body:          r.Body,
		RemoteAddr:    r.RemoteAddr,
		RequestURI:    r.RequestURI,
	}
}
