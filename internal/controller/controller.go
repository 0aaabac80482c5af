// Package controller orchestrates the worker set. It owns the book-store,
// user-store, and barcode worker handles, routes controller-facing envelopes
// to the right worker, and implements the two-phase flow that resolves a
// scanned identity against the book or user store.
package controller

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/drauger-os/golibman/internal/barcode"
	"github.com/drauger-os/golibman/internal/worker"
	"github.com/drauger-os/golibman/pkg/types"
)

// Envelope targets. "both" fans a command out to the book store then the
// user store; "barcode" passes it through to the barcode collaborator.
const (
	TableBook    = "book"
	TableUser    = "user"
	TableBoth    = "both"
	TableBarcode = "barcode"
)

// DefaultScanTimeout bounds how long a barcode request waits for a frame
// that decodes.
const DefaultScanTimeout = 30 * time.Second

// Envelope is the controller-facing request: one command addressed to a
// table.
type Envelope struct {
	Table   string
	Command types.Command
}

// Controller brokers commands between callers and the workers.
type Controller struct {
	books       *worker.Worker
	users       *worker.Worker
	scanner     *barcode.Scanner
	scanTimeout time.Duration
}

// New creates a controller over started workers. The scanner may be nil
// when no barcode hardware is present; barcode requests then fail plainly.
func New(books, users *worker.Worker, scanner *barcode.Scanner) *Controller {
	return &Controller{
		books:       books,
		users:       users,
		scanner:     scanner,
		scanTimeout: DefaultScanTimeout,
	}
}

// WithScanner attaches (or replaces) the barcode collaborator. Once
// attached, Shutdown owns stopping it.
func (c *Controller) WithScanner(scanner *barcode.Scanner) *Controller {
	c.scanner = scanner
	return c
}

// WithScanTimeout overrides the barcode wait deadline.
func (c *Controller) WithScanTimeout(d time.Duration) *Controller {
	c.scanTimeout = d
	return c
}

// Dispatch routes one envelope and returns the replies in table order:
// one reply for a single-store target, book-then-user for "both".
func (c *Controller) Dispatch(env Envelope) []types.Reply {
	switch env.Table {
	case TableBook:
		return []types.Reply{c.books.Send(env.Command)}
	case TableUser:
		return []types.Reply{c.users.Send(env.Command)}
	case TableBoth:
		return []types.Reply{c.books.Send(env.Command), c.users.Send(env.Command)}
	case TableBarcode:
		return []types.Reply{c.scanReply()}
	default:
		log.WithField("table", env.Table).Warn("envelope for unknown table")
		return []types.Reply{types.FailedReply()}
	}
}

// GetBarcode resolves one scanned identity: it waits for the barcode
// collaborator to decode a payload, then looks the uid up in whichever
// store the payload's type names, and returns that store's reply.
func (c *Controller) GetBarcode() types.Reply {
	if c.scanner == nil {
		return types.FailedReply()
	}

	payload, ok := c.scanner.GetBarcode(c.scanTimeout)
	if !ok {
		return types.FailedReply()
	}

	cmd := types.NewGetCommand(
		&types.Filter{Field: "uid", Compare: payload.UID}, types.ColumnAll)

	switch payload.Type {
	case barcode.TypeBook:
		return c.books.Send(cmd)
	case barcode.TypeUser:
		return c.users.Send(cmd)
	default:
		log.WithField("type", payload.Type).Warn("barcode payload for unknown table")
		return types.FailedReply()
	}
}

// scanReply passes a barcode-table command through to the collaborator and
// wraps the decoded payload as a one-record reply.
func (c *Controller) scanReply() types.Reply {
	if c.scanner == nil {
		return types.FailedReply()
	}
	payload, ok := c.scanner.GetBarcode(c.scanTimeout)
	if !ok {
		return types.FailedReply()
	}
	return types.Reply{Status: types.StatusOK, Records: []any{payload}}
}

// Shutdown terminates all workers. The book worker stops first: its lending
// engine is the only party that sends to the user worker, so the user
// worker's channel must outlive it.
func (c *Controller) Shutdown() {
	c.books.Stop()
	c.users.Stop()
	if c.scanner != nil {
		c.scanner.Stop()
	}
	log.Info("all workers stopped")
}
