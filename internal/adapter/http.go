package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-rest-pipeline/internal/auth"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// Config configures the HTTP client.
type Config struct {
	Address string
	APIKey  string
	Timeout time.Duration
}

type httpClient struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPClient returns a Client for the pipeline at cfg.Address. A bare
// host:port is taken as http.
func NewHTTPClient(cfg Config, logger *logger.Logger) (Client, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.Timeout)
	if cfg.APIKey != "" {
		client.SetHeader(auth.HeaderAPIKey, cfg.APIKey)
	}

	return &httpClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpClient) Call(ctx context.Context, method, path string, body any) (Result, error) {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(strings.ToUpper(method), path)
	if err != nil {
		return Result{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	res := Result{
		Status:  resp.StatusCode(),
		Raw:     resp.Body(),
		TraceID: resp.Header().Get(traceIDHeader),
	}
	if len(res.Raw) > 0 {
		if err := json.Unmarshal(res.Raw, &res.Envelope); err != nil {
			h.logger.Debug().Err(err).Int("status", res.Status).Msg("response is not an envelope")
		}
	}

	return res, mapHTTPError(res)
}
