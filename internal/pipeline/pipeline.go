// Package pipeline runs one request through parsing, dispatch and emission.
package pipeline

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/MKhiriev/go-rest-pipeline/internal/emitter"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/internal/request"
	"github.com/MKhiriev/go-rest-pipeline/internal/router"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// Pipeline wires the request parser, the router and the emitter.
type Pipeline struct {
	parser  *request.Parser
	router  *router.Router
	emitter *emitter.Emitter
}

func New(parser *request.Parser, r *router.Router, e *emitter.Emitter) *Pipeline {
	return &Pipeline{parser: parser, router: r, emitter: e}
}

// Process parses raw and dispatches it. The returned result is Halt with
// the response to send, or Pass when no route claimed the request.
// A dispatch that matched without an answer yields the default draft.
func (p *Pipeline) Process(ctx context.Context, raw request.RawContext) (*models.Request, models.Result) {
	req := p.parser.Parse(ctx, raw)

	res := p.router.Dispatch(ctx, req)
	switch {
	case res.Halted(), res.Passed():
		return req, res
	default:
		return req, models.Halt(models.Response{})
	}
}

// ServeHTTP implements http.Handler. Unclaimed requests answer 404.
func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, nil)
}

// Middleware mounts the pipeline in front of next: requests no route
// claims are handed to next untouched.
func (p *Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.serve(w, r, next)
	})
}

func (p *Pipeline) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := r.Context()
	req, res := p.Process(ctx, request.FromHTTP(r))

	if res.Passed() {
		if next != nil {
			if req.Body != nil && r.Body != nil {
				// the parser consumed at most the body limit; the rest is
				// still unread in r.Body
				r.Body = replayBody{
					Reader: io.MultiReader(bytes.NewReader(req.Body), r.Body),
					Closer: r.Body,
				}
			}
			next.ServeHTTP(w, r)
			return
		}
		res = models.Halt(models.ErrorNotFound())
	}

	x := p.emitter.NewExchange(req, w)
	if err := x.Send(ctx, res.Response()); err != nil {
		logger.FromContext(ctx).Err(err).Msg("error sending response")
	}
}

type replayBody struct {
	io.Reader
	io.Closer
}

// ServeRaw answers one request on a raw stream, e.g. a CGI-style host.
// Unclaimed requests answer 404.
func (p *Pipeline) ServeRaw(ctx context.Context, raw request.RawContext, out io.Writer) error {
	req, res := p.Process(ctx, raw)
	if res.Passed() {
		res = models.Halt(models.ErrorNotFound())
	}
	return p.emitter.NewRawExchange(req, out).Send(ctx, res.Response())
}
