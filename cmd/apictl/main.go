// Command apictl calls a route of a running pipeline with an API key and
// prints the answer.
//
//	apictl [-a address] [-k key] [-X method] [-d json] path
//
// The address and key default to APICTL_ADDRESS and APICTL_KEY.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/MKhiriev/go-rest-pipeline/internal/adapter"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
)

type options struct {
	Address string        `env:"APICTL_ADDRESS" envDefault:"localhost:8080"`
	Key     string        `env:"APICTL_KEY"`
	Timeout time.Duration `env:"APICTL_TIMEOUT" envDefault:"15s"`
	Method  string
	Data    string
	Path    string
	Verbose bool
}

var errNoPath = errors.New("path is required")

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.Nop()
	if opts.Verbose {
		log = logger.NewLogger("apictl")
	}

	code, err := run(context.Background(), opts, os.Stdout, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

func parseOptions(args []string) (options, error) {
	var opts options
	if err := env.Parse(&opts); err != nil {
		return opts, fmt.Errorf("error parsing env: %w", err)
	}

	fs := flag.NewFlagSet("apictl", flag.ContinueOnError)
	fs.StringVar(&opts.Address, "a", opts.Address, "Pipeline address host:port or URL")
	fs.StringVar(&opts.Key, "k", opts.Key, "API key sent as X-APIKEY")
	fs.StringVar(&opts.Method, "X", http.MethodGet, "HTTP method")
	fs.StringVar(&opts.Data, "d", "", "JSON request body")
	fs.DurationVar(&opts.Timeout, "t", opts.Timeout, "Request timeout")
	fs.BoolVar(&opts.Verbose, "v", false, "Log to stdout")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() == 0 {
		return opts, errNoPath
	}
	opts.Path = fs.Arg(0)

	return opts, nil
}

// run performs the call and prints the status line and the indented body.
// The exit code is 0 for 2xx answers and 1 otherwise.
func run(ctx context.Context, opts options, out io.Writer, log *logger.Logger) (int, error) {
	var body any
	if opts.Data != "" {
		raw := json.RawMessage(opts.Data)
		if !json.Valid(raw) {
			return 2, fmt.Errorf("-d is not valid JSON")
		}
		body = raw
	}

	client, err := adapter.NewHTTPClient(adapter.Config{
		Address: opts.Address,
		APIKey:  opts.Key,
		Timeout: opts.Timeout,
	}, log)
	if err != nil {
		return 2, err
	}

	res, callErr := client.Call(ctx, opts.Method, opts.Path, body)
	if res.Status == 0 {
		return 1, callErr
	}

	fmt.Fprintf(out, "%d %s\n", res.Status, http.StatusText(res.Status))

	var pretty bytes.Buffer
	if json.Indent(&pretty, res.Raw, "", "  ") == nil {
		pretty.WriteByte('\n')
		_, _ = pretty.WriteTo(out)
	} else if len(res.Raw) > 0 {
		fmt.Fprintln(out, string(res.Raw))
	}

	if callErr != nil {
		return 1, nil
	}
	return 0, nil
}
