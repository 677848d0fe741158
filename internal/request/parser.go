// Package request turns the raw transport view of a call into an immutable
// models.Request. Parsing never fails: malformed input degrades to empty
// values.
package request

import (
	"context"
	"io"
	"mime"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Format hints.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

const (
	mediaJSON = "application/json"
	mediaForm = "application/x-www-form-urlencoded"

	defaultMaxBodyBytes = 10 << 20
	defaultProtocol     = "HTTP/1.0"
)

var (
	apiPrefix     = regexp.MustCompile(`(?i)^/api(/|$)`)
	tokenPattern  = regexp.MustCompile(`(?i)^token\s+token=(.*)`)
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+(.*)`)
)

// Parser normalizes raw requests.
type Parser struct {
	maxBodyBytes    int64
	defaultProtocol string
}

// NewParser returns a Parser that reads at most maxBodyBytes of a body and
// reports defaultProtocol when the transport gives none. Non-positive or
// empty arguments select the defaults.
func NewParser(maxBodyBytes int64, defaultProto string) *Parser {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	if defaultProto == "" {
		defaultProto = defaultProtocol
	}
	return &Parser{maxBodyBytes: maxBodyBytes, defaultProtocol: defaultProto}
}

// Parse builds the request snapshot of raw.
func (p *Parser) Parse(ctx context.Context, raw RawContext) *models.Request {
	log := logger.FromContext(ctx)

	req := &models.Request{
		Method:        strings.ToUpper(raw.Method),
		Protocol:      raw.Protocol,
		RequestURI:    raw.RequestURI,
		RemoteAddr:    raw.RemoteAddr,
		ContentType:   raw.ContentType,
		ContentLength: raw.ContentLength,
		Headers:       cloneHeaders(raw.Headers),
		Received:      time.Now(),
	}
	if req.Protocol == "" {
		req.Protocol = p.defaultProtocol
	}

	p.parsePath(req, raw)
	req.ClientIP = clientIP(req.Headers, raw.RemoteAddr)
	p.parseAuthorization(req, raw.Authorization)

	params := make(models.Parameters)
	mergeQuery(params, raw.QueryString)

	if hasBody(req.Method) && raw.Body != nil {
		body, err := io.ReadAll(io.LimitReader(raw.Body, p.maxBodyBytes))
		if err != nil {
			log.Debug().Err(err).Msg("error reading request body")
		}
		req.Body = body
		if req.ContentLength < 0 {
			req.ContentLength = int64(len(body))
		}
	}
	if req.ContentLength < 0 {
		req.ContentLength = 0
	}

	switch mediaType(raw.ContentType) {
	case mediaJSON:
		req.Format = FormatJSON
		if err := mergeJSON(params, req.Body); err != nil {
			log.Debug().Err(err).Msg("ignoring malformed json body")
		}
	case mediaForm:
		req.Format = FormatHTML
		mergeQuery(params, string(req.Body))
	default:
		req.Format = FormatHTML
	}

	if format, ok := formatParam(params); ok {
		req.Format = format
	}
	req.Parameters = params

	log.Debug().
		Str("path_info", req.PathInfo).
		Strs("path_list", req.PathList).
		Str("api_version", req.APIVersion).
		Str("path", req.Path).
		Str("base_path", req.BasePath).
		Str("format", req.Format).
		Msg("request parsed")

	return req
}

func (p *Parser) parsePath(req *models.Request, raw RawContext) {
	req.RawPath = raw.PathInfo
	if req.RawPath == "" {
		req.RawPath = raw.RedirectURL
	}

	req.PathInfo = req.RawPath
	if loc := apiPrefix.FindStringIndex(req.PathInfo); loc != nil {
		// keep the separator so PathInfo stays rooted
		req.PathInfo = "/" + req.PathInfo[loc[1]:]
	}

	trimmed := strings.Trim(req.PathInfo, "/")
	var segments []string
	if trimmed != "" {
		segments = strings.Split(trimmed, "/")
	}

	if len(segments) > 0 {
		req.APIVersion = segments[0]
		segments = segments[1:]
	}
	req.PathList = segments
	req.Path = "/" + strings.Join(segments, "/")
	if len(segments) > 0 {
		req.BasePath = segments[0]
	}
}

func (p *Parser) parseAuthorization(req *models.Request, auth string) {
	if auth == "" {
		return
	}
	req.Auth = auth

	if m := tokenPattern.FindStringSubmatch(auth); m != nil {
		req.Token = strings.Trim(m[1], `"`)
	} else if m = bearerPattern.FindStringSubmatch(auth); m != nil {
		req.Token = m[1]
	}
}

func hasBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// mediaType returns the lower-cased media type without parameters.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
		return strings.ToLower(strings.TrimSpace(mt))
	}
	return mt
}

// clientIP returns the first present of X-Forwarded-For (left-most hop),
// Client-Ip and the host part of the socket address.
func clientIP(headers models.Headers, remoteAddr string) string {
	if fwd := headers.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if ip := headers.Get("Client-Ip"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

func formatParam(params models.Parameters) (string, bool) {
	switch v := params["format"].(type) {
	case string:
		return v, true
	case interface{ String() string }:
		return v.String(), true
	}
	return "", false
}

func cloneHeaders(h models.Headers) models.Headers {
	out := make(models.Headers, len(h))
	for name, values := range h {
		out[name] = append([]string(nil), values...)
	}
	return out
}
