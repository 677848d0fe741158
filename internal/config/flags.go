package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line.
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-body-bytes maximum request body size read by the parser
//	-route-mode "continue" or "stop"
//	-keys inline JSON object of label→key
//	-keys-file JSON/YAML key registry file
//	-keys-passphrase passphrase of a sealed key registry file
//	-session-sign-key session token signing key
//	-audit-dir directory of audit log files
//	-audit-driver / -audit-dsn audit database
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-rest-pipeline", flag.ContinueOnError)

	var serverAddress NetAddress
	var jsonConfigPath string
	var requestTimeout time.Duration
	var maxBodyBytes int64
	var routeMode string
	var keysJSON, keysFile, keysPassphrase string
	var sessionSignKey string
	var auditDir, auditDriver, auditDSN string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxBodyBytes, "max-body-bytes", 0, "Maximum request body size in bytes")
	fs.StringVar(&routeMode, "route-mode", "", "Route dispatch mode: continue or stop")
	fs.StringVar(&keysJSON, "keys", "", "Inline JSON key registry")
	fs.StringVar(&keysFile, "keys-file", "", "Key registry file (JSON or YAML)")
	fs.StringVar(&keysPassphrase, "keys-passphrase", "", "Passphrase of a sealed key registry file")
	fs.StringVar(&sessionSignKey, "session-sign-key", "", "Session token signing key")
	fs.StringVar(&auditDir, "audit-dir", "", "Audit log directory")
	fs.StringVar(&auditDriver, "audit-driver", "", "Audit database driver (sqlite3, pgx)")
	fs.StringVar(&auditDSN, "audit-dsn", "", "Audit database DSN")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxBodyBytes:   maxBodyBytes,
		},
		Pipeline: Pipeline{
			RouteMode: routeMode,
		},
		Auth: Auth{
			KeysJSON:       keysJSON,
			KeysFile:       keysFile,
			KeysPassphrase: keysPassphrase,
			SessionSignKey: sessionSignKey,
		},
		Audit: Audit{
			Dir:    auditDir,
			Driver: auditDriver,
			DSN:    auditDSN,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, found := strings.Cut(s, ":")
	if !found || strings.Contains(portStr, ":") {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
