package emitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-rest-pipeline/internal/audit"
	"github.com/MKhiriev/go-rest-pipeline/internal/logger"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

// ErrAlreadySent is returned by every Send after the first one.
var ErrAlreadySent = errors.New("response already sent")

// Exchange is the response side of one request. Exactly one response can
// be sent through it.
type Exchange struct {
	emitter *Emitter
	req     *models.Request
	w       http.ResponseWriter
	out     io.Writer

	once  sync.Once
	frame Frame
}

// NewExchange returns an Exchange writing through w.
func (e *Emitter) NewExchange(req *models.Request, w http.ResponseWriter) *Exchange {
	return &Exchange{emitter: e, req: req, w: w}
}

// NewRawExchange returns an Exchange writing raw HTTP/1.x text to out.
func (e *Emitter) NewRawExchange(req *models.Request, out io.Writer) *Exchange {
	return &Exchange{emitter: e, req: req, out: out}
}

// Send builds and writes resp, then records a response summary. Only the
// first call has any effect; later calls return ErrAlreadySent.
func (x *Exchange) Send(ctx context.Context, resp models.Response) error {
	err := ErrAlreadySent
	x.once.Do(func() {
		err = x.send(ctx, resp)
	})
	return err
}

func (x *Exchange) send(ctx context.Context, resp models.Response) error {
	protocol := ""
	if x.req != nil {
		protocol = x.req.Protocol
	}
	x.frame = x.emitter.Build(protocol, resp)

	var err error
	switch {
	case x.w != nil:
		err = x.frame.WriteHTTP(x.w)
	case x.out != nil:
		_, err = x.frame.WriteTo(x.out)
	}
	if err != nil {
		err = fmt.Errorf("error writing response: %w", err)
		logger.FromContext(ctx).Err(err).Int("status", x.frame.Status).Msg("response write failed")
	}

	rec := audit.NewRecord(models.AuditResponse, x.req)
	rec.Status = x.frame.Status
	rec.Message = fmt.Sprintf("%s (%s)", x.frame.StatusLine, statusText(x.frame.Status))
	if auditErr := x.emitter.sink.Write(ctx, rec); auditErr != nil {
		logger.FromContext(ctx).Warn().Err(auditErr).Msg("error writing response audit record")
	}

	return err
}

// Sent reports whether a response has been sent.
func (x *Exchange) Sent() bool {
	return x.frame.StatusLine != ""
}

// Frame returns the sent frame, or the zero Frame before Send.
func (x *Exchange) Frame() Frame {
	return x.frame
}
