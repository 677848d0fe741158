package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxBodyBytes   int64    `json:"max_body_bytes"`
	} `json:"server,omitempty"`

	Pipeline struct {
		RouteMode       string               `json:"route_mode"`
		DefaultProtocol string               `json:"default_protocol"`
		Routes          []models.RouteConfig `json:"routes"`
	} `json:"pipeline,omitempty"`

	Auth struct {
		KeysJSON        json.RawMessage `json:"api_keys"`
		KeysFile        string          `json:"keys_file"`
		KeysPassphrase  string          `json:"keys_passphrase"`
		SessionSignKey  string          `json:"session_sign_key"`
		SessionIssuer   string          `json:"session_issuer"`
		SessionCookie   string          `json:"session_cookie"`
		SessionDuration Duration        `json:"session_duration"`
	} `json:"auth,omitempty"`

	Audit struct {
		Dir    string `json:"dir"`
		Driver string `json:"db_driver"`
		DSN    string `json:"db_dsn"`
	} `json:"audit,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	// api_keys is kept as raw text so the registry loader can preserve the
	// order of its members.
	var keysJSON string
	if len(jsonCfg.Auth.KeysJSON) > 0 && string(jsonCfg.Auth.KeysJSON) != "null" {
		keysJSON = string(jsonCfg.Auth.KeysJSON)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxBodyBytes:   jsonCfg.Server.MaxBodyBytes,
		},
		Pipeline: Pipeline{
			RouteMode:       jsonCfg.Pipeline.RouteMode,
			DefaultProtocol: jsonCfg.Pipeline.DefaultProtocol,
			Routes:          jsonCfg.Pipeline.Routes,
		},
		Auth: Auth{
			KeysJSON:        keysJSON,
			KeysFile:        jsonCfg.Auth.KeysFile,
			KeysPassphrase:  jsonCfg.Auth.KeysPassphrase,
			SessionSignKey:  jsonCfg.Auth.SessionSignKey,
			SessionIssuer:   jsonCfg.Auth.SessionIssuer,
			SessionCookie:   jsonCfg.Auth.SessionCookie,
			SessionDuration: time.Duration(jsonCfg.Auth.SessionDuration),
		},
		Audit: Audit{
			Dir:    jsonCfg.Audit.Dir,
			Driver: jsonCfg.Audit.Driver,
			DSN:    jsonCfg.Audit.DSN,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
