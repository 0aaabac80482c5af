// Package worker runs the per-store command loops. Each worker owns one
// record store and processes exactly one command at a time: blocking-receive,
// execute, reply, repeat. That strict serialization is the store's only
// concurrency control; commands sent to one worker are handled in send order.
package worker

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/drauger-os/golibman/internal/lending"
	"github.com/drauger-os/golibman/pkg/types"
)

const (
	// Request channel buffer size.
	requestBufferSize = 10

	// DefaultTimeout bounds one round trip through a worker. A command
	// that produces no reply within the deadline surfaces as a plain
	// failure instead of blocking the caller forever.
	DefaultTimeout = 5 * time.Second
)

// Request carries one command and the channel its reply is sent on. The
// reply channel is buffered so a loop never blocks on a caller that gave up.
type Request struct {
	ID   uuid.UUID
	Cmd  types.Command
	Resp chan types.Reply
}

// Worker is one store's sequential command loop.
type Worker struct {
	name    string
	store   types.RecordStore
	lend    *lending.Engine // nil on stores that take no lending commands
	timeout time.Duration

	requests chan Request
	stopped  chan struct{}
}

// New creates a worker over the given store. Call Start to begin serving.
func New(name string, store types.RecordStore) *Worker {
	return &Worker{
		name:     name,
		store:    store,
		timeout:  DefaultTimeout,
		requests: make(chan Request, requestBufferSize),
		stopped:  make(chan struct{}),
	}
}

// WithLending attaches a lending engine, enabling the checkout, checkin,
// and renew command types on this worker.
func (w *Worker) WithLending(engine *lending.Engine) *Worker {
	w.lend = engine
	return w
}

// WithTimeout overrides the round-trip deadline.
func (w *Worker) WithTimeout(d time.Duration) *Worker {
	w.timeout = d
	return w
}

// Start launches the command loop.
func (w *Worker) Start() *Worker {
	go w.loop()
	return w
}

// Stop closes the request channel and blocks until the loop drains and
// exits. Commands already queued are still served.
func (w *Worker) Stop() {
	close(w.requests)
	<-w.stopped
}

// Send executes one command and waits for the reply, bounded by the worker
// deadline. A timed-out round trip is reported as a plain failure.
func (w *Worker) Send(cmd types.Command) types.Reply {
	req := Request{ID: uuid.New(), Cmd: cmd, Resp: make(chan types.Reply, 1)}

	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	select {
	case w.requests <- req:
	case <-timer.C:
		log.WithFields(log.Fields{"worker": w.name, "cmd": cmd.CmdType}).
			Warn("send timed out")
		return types.FailedReply()
	}

	select {
	case reply := <-req.Resp:
		return reply
	case <-timer.C:
		log.WithFields(log.Fields{"worker": w.name, "cmd": cmd.CmdType, "request": req.ID}).
			Warn("reply timed out")
		return types.FailedReply()
	}
}

func (w *Worker) loop() {
	for req := range w.requests {
		logger := log.WithFields(log.Fields{
			"worker":  w.name,
			"cmd":     req.Cmd.CmdType,
			"request": req.ID,
		})
		logger.Debug("command received")

		reply, known := w.execute(req.Cmd)
		if !known {
			// Unknown command types get no reply; the caller's
			// deadline converts the silence into a failure.
			logger.Warn("unknown command type dropped")
			continue
		}

		req.Resp <- reply
		logger.WithField("status", reply.Status).Debug("command handled")
	}
	close(w.stopped)
}

// execute runs one command against the store or the lending engine. The
// second return value is false only for unknown command types. Writes are
// committed as they execute; a failed write becomes a status-0 reply, never
// a crash.
func (w *Worker) execute(cmd types.Command) (types.Reply, bool) {
	switch cmd.CmdType {
	case types.CmdGet:
		records, values, err := w.store.Get(cmd.Filter, cmd.Column)
		if err != nil {
			w.warn(cmd, err)
			return types.FailedReply(), true
		}
		return types.Reply{Status: types.StatusOK, Records: records, Values: values}, true

	case types.CmdChange:
		if cmd.Settings == nil {
			return types.FailedReply(), true
		}
		return w.replyFor(cmd, w.store.Change(*cmd.Settings)), true

	case types.CmdDelete:
		if cmd.Filter == nil {
			return types.FailedReply(), true
		}
		return w.replyFor(cmd, w.store.Delete(cmd.Filter.Field, cmd.Filter.Compare)), true

	case types.CmdAdd:
		return w.replyFor(cmd, w.store.Add(cmd.Data)), true

	case types.CmdCheckout:
		if w.lend == nil || cmd.Lend == nil {
			return types.FailedReply(), true
		}
		dueDate, err := w.lend.Checkout(cmd.Lend.BookUID, cmd.Lend.UserUID)
		if err != nil {
			return w.replyFor(cmd, err), true
		}
		return types.Reply{Status: types.StatusOK, DueDate: dueDate}, true

	case types.CmdCheckin:
		if w.lend == nil || cmd.Lend == nil {
			return types.FailedReply(), true
		}
		return w.replyFor(cmd, w.lend.Checkin(cmd.Lend.BookUID, cmd.Lend.UserUID)), true

	case types.CmdRenew:
		if w.lend == nil || cmd.Lend == nil {
			return types.FailedReply(), true
		}
		dueDate, err := w.lend.Renew(cmd.Lend.BookUID, cmd.Lend.UserUID)
		if err != nil {
			return w.replyFor(cmd, err), true
		}
		return types.Reply{Status: types.StatusOK, DueDate: dueDate}, true

	default:
		return types.Reply{}, false
	}
}

// replyFor maps an operation error to its reply, logging plain failures.
// Conflicts are recoverable outcomes and are not logged as failures.
func (w *Worker) replyFor(cmd types.Command, err error) types.Reply {
	reply := types.ReplyForError(err)
	if reply.Status == types.StatusFailed && err != nil {
		w.warn(cmd, err)
	}
	return reply
}

func (w *Worker) warn(cmd types.Command, err error) {
	log.WithFields(log.Fields{
		"worker": w.name,
		"cmd":    cmd.CmdType,
	}).WithError(err).Warn("command failed")
}
