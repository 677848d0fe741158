package adapter

import (
	"fmt"
	"net/http"
	"strings"
)

// mapHTTPError turns a non-2xx answer into a sentinel error carrying the
// envelope's error message, or the raw body when there is no envelope.
func mapHTTPError(res Result) error {
	if res.Status >= http.StatusOK && res.Status < http.StatusMultipleChoices {
		return nil
	}

	msg, _ := res.Envelope["error"].(string)
	if msg == "" {
		msg = strings.TrimSpace(string(res.Raw))
	}

	switch res.Status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusMethodNotAllowed:
		return fmt.Errorf("%w: %s", ErrMethodNotAllowed, msg)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, msg)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, msg)
	default:
		if msg == "" {
			msg = http.StatusText(res.Status)
		}
		return fmt.Errorf("http %d: %s", res.Status, msg)
	}
}
