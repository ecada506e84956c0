package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/kapi/internal/core/history"
	"github.com/sadopc/kapi/internal/core/request"
	"github.com/sadopc/kapi/internal/core/response"
	"github.com/sadopc/kapi/internal/protocol"
)

// Runner drives one send from raw editor text to a displayed and recorded
// response. It is shared by the TUI and the headless send command.
type Runner struct {
	exec    protocol.Executor
	history *history.Store
	log     *zap.Logger
	now     func() time.Time
}

// Input holds the four user-entered fields.
type Input struct {
	Method  string
	URL     string
	Headers string
	Body    string
}

// Outcome is the result of a completed send, including transport failures.
type Outcome struct {
	Request  *protocol.Request
	Response response.Response
	// Display is the combined text block for the response pane and export.
	Display string
	Entry   history.Entry
	// HistoryErr is set when the entry could not be written. The send
	// itself still counts as completed.
	HistoryErr error
}

// New creates a runner. A nil store disables history recording.
func New(exec protocol.Executor, store *history.Store, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		exec:    exec,
		history: store,
		log:     log,
		now:     time.Now,
	}
}

// Send builds the request, executes it and records the exchange.
// Build errors are returned as *request.Error before anything is sent or
// recorded; every other outcome comes back as an Outcome with a nil error.
func (r *Runner) Send(ctx context.Context, in Input) (*Outcome, error) {
	req, err := request.Build(in.Method, in.URL, in.Headers, in.Body)
	if err != nil {
		r.log.Info("request rejected before sending",
			zap.Stringer("kind", request.KindOf(err)),
			zap.Error(err),
		)
		return nil, err
	}
	return r.SendRequest(ctx, req), nil
}

// SendRequest executes an already built request and records the exchange.
func (r *Runner) SendRequest(ctx context.Context, req *protocol.Request) *Outcome {
	resp := r.execute(ctx, req)

	out := &Outcome{
		Request:  req,
		Response: resp,
		Display:  response.Format(resp),
		Entry:    history.NewEntry(r.now(), req, resp),
	}

	if r.history != nil {
		if err := r.history.Append(out.Entry); err != nil {
			out.HistoryErr = fmt.Errorf("failed to save history: %w", err)
		}
	}
	return out
}

// execute turns a panicking executor into an unexpected-error response.
func (r *Runner) execute(ctx context.Context, req *protocol.Request) (resp response.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("executor panicked", zap.Any("panic", rec))
			resp = response.Unexpected(fmt.Errorf("%v", rec))
		}
	}()
	return response.Interpret(r.exec.Execute(ctx, req))
}

// ExitCode maps an outcome to the send command's exit status: 0 when an
// HTTP response was received, 1 on a transport failure.
func ExitCode(o *Outcome) int {
	if o == nil || o.Response.Failed() {
		return 1
	}
	return 0
}
