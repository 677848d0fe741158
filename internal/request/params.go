package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

var (
	errNotObject    = errors.New("json body is not an object")
	errTrailingData = errors.New("json body has trailing data")
)

// mergeQuery decodes a query string into params. Keys ending in "[]"
// collect every value into a list stored under the bare name; any other
// repeated key keeps its last value. Undecodable pairs are skipped.
func mergeQuery(params models.Parameters, query string) {
	if query == "" {
		return
	}

	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key == "" {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		if name, ok := strings.CutSuffix(key, "[]"); ok && name != "" {
			list, _ := params[name].([]string)
			params[name] = append(list, value)
			continue
		}
		params[key] = value
	}
}

// mergeJSON decodes a JSON object body over params. Numbers stay
// json.Number so integers keep their exact text.
func mergeJSON(params models.Parameters, body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(escapeControlInStrings(body)))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return err
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return errNotObject
	}
	for k, v := range obj {
		params[k] = v
	}
	return nil
}

// escapeControlInStrings rewrites raw CR, LF and TAB bytes that appear
// inside JSON string literals as their escape sequences. Bytes outside
// strings are left alone so formatted documents still decode.
func escapeControlInStrings(body []byte) []byte {
	out := make([]byte, 0, len(body))
	inString, escaped := false, false

	for _, b := range body {
		if !inString {
			if b == '"' {
				inString = true
			}
			out = append(out, b)
			continue
		}

		switch {
		case escaped:
			escaped = false
		case b == '\\':
			escaped = true
		case b == '"':
			inString = false
		case b == '\r':
			out = append(out, '\\', 'r')
			continue
		case b == '\n':
			out = append(out, '\\', 'n')
			continue
		case b == '\t':
			out = append(out, '\\', 't')
			continue
		}
		out = append(out, b)
	}

	return out
}
