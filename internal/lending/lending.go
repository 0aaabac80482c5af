// Package lending implements checkout, checkin, and renew as ordered
// sequences of record-store operations. Book-side steps run directly against
// the book store; the single user-side step is a round trip to the user
// store's worker. The steps are not atomic across the two stores: a failure
// partway through leaves state exactly as the completed steps left it.
package lending

import (
	"errors"
	"fmt"
	"time"

	"github.com/drauger-os/golibman/pkg/types"
)

// ErrNotFound reports that the book or user targeted by a lending operation
// does not exist.
var ErrNotFound = errors.New("record not found")

// CommandSender executes one command against a store worker and returns its
// reply. The user store's worker handle satisfies this.
type CommandSender interface {
	Send(cmd types.Command) types.Reply
}

// Engine performs the lending state transitions for one book store.
type Engine struct {
	books    types.RecordStore
	users    CommandSender
	settings types.Settings
	now      func() time.Time
}

// NewEngine creates a lending engine over the given book store and user
// store worker.
func NewEngine(books types.RecordStore, users CommandSender, settings types.Settings) *Engine {
	return &Engine{
		books:    books,
		users:    users,
		settings: settings,
		now:      time.Now,
	}
}

// Checkout lends the book to the user and returns the Unix due date.
// A book that is not checked in yields a *ConflictError carrying its current
// status and holder; no write happens in that case.
func (e *Engine) Checkout(bookUID, userUID int64) (int64, error) {
	book, err := e.getBook(bookUID)
	if err != nil {
		return 0, err
	}
	if book.CheckInStatus.Status != types.StatusCheckedIn {
		return 0, &types.ConflictError{
			Reason: book.CheckInStatus.Status,
			User:   book.CheckInStatus.Holder(),
		}
	}

	checkedOut := e.now().Unix()
	dueDate := checkedOut + int64(e.settings.DefaultCheckoutDays)*86400

	status := types.Status{
		Status:     types.StatusCheckedOut,
		Possession: &userUID,
		DueDate:    dueDate,
	}
	if err := e.books.Change(types.ChangeSpec{
		ChField: "check_in_status", New: status,
		SearchTerm: "uid", SearchValue: bookUID,
	}); err != nil {
		return 0, fmt.Errorf("write check_in_status: %w", err)
	}

	// Prepend the new loan; entry 0 is always the current one.
	history := append([]types.CheckoutRecord{{
		UID:        userUID,
		CheckedOut: checkedOut,
		DueDate:    dueDate,
	}}, book.CheckOutHistory...)
	if err := e.books.Change(types.ChangeSpec{
		ChField: "check_out_history", New: history,
		SearchTerm: "uid", SearchValue: bookUID,
	}); err != nil {
		return 0, fmt.Errorf("write check_out_history: %w", err)
	}

	if err := e.updateUserBooks(userUID, func(u *types.User) []int64 {
		return u.WithBook(bookUID)
	}); err != nil {
		return 0, err
	}

	return dueDate, nil
}

// Checkin returns the book to circulation. Only a checked-out or missing
// book may be checked in; anything else yields a *ConflictError.
func (e *Engine) Checkin(bookUID, userUID int64) error {
	book, err := e.getBook(bookUID)
	if err != nil {
		return err
	}
	current := book.CheckInStatus.Status
	if current != types.StatusCheckedOut && current != types.StatusMissing {
		return &types.ConflictError{Reason: current}
	}

	if err := e.books.Change(types.ChangeSpec{
		ChField: "check_in_status", New: types.NewStatus(),
		SearchTerm: "uid", SearchValue: bookUID,
	}); err != nil {
		return fmt.Errorf("write check_in_status: %w", err)
	}

	if len(book.CheckOutHistory) > 0 {
		history := append([]types.CheckoutRecord{}, book.CheckOutHistory...)
		history[0].Returned = true
		if err := e.books.Change(types.ChangeSpec{
			ChField: "check_out_history", New: history,
			SearchTerm: "uid", SearchValue: bookUID,
		}); err != nil {
			return fmt.Errorf("write check_out_history: %w", err)
		}
	}

	return e.updateUserBooks(userUID, func(u *types.User) []int64 {
		return u.WithoutBook(bookUID)
	})
}

// Renew is a checkin immediately followed by a checkout with the same
// arguments: two independent passes through the same conflict checks. If the
// checkin fails, the checkout is skipped and the failure surfaces as-is.
func (e *Engine) Renew(bookUID, userUID int64) (int64, error) {
	if err := e.Checkin(bookUID, userUID); err != nil {
		return 0, err
	}
	return e.Checkout(bookUID, userUID)
}

// getBook reads one book by uid.
func (e *Engine) getBook(bookUID int64) (*types.Book, error) {
	records, _, err := e.books.Get(
		&types.Filter{Field: "uid", Compare: bookUID}, types.ColumnAll)
	if err != nil {
		return nil, fmt.Errorf("read book %d: %w", bookUID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("book %d: %w", bookUID, ErrNotFound)
	}
	book, ok := records[0].(*types.Book)
	if !ok {
		return nil, types.ErrInvalidRecord
	}
	return book, nil
}

// updateUserBooks reads the user through the user store worker, applies
// update to its checked-out set, and writes the result back. Two round
// trips; the user worker serializes them against other user commands.
func (e *Engine) updateUserBooks(userUID int64, update func(*types.User) []int64) error {
	reply := e.users.Send(types.NewGetCommand(
		&types.Filter{Field: "uid", Compare: userUID}, types.ColumnAll))
	if reply.Status != types.StatusOK {
		return fmt.Errorf("read user %d: status %d", userUID, reply.Status)
	}
	if len(reply.Records) == 0 {
		return fmt.Errorf("user %d: %w", userUID, ErrNotFound)
	}
	user, ok := reply.Records[0].(*types.User)
	if !ok {
		return types.ErrInvalidRecord
	}

	books := update(user)
	ch := e.users.Send(types.NewChangeCommand("checked_out_books", books, "uid", userUID))
	if ch.Status != types.StatusOK {
		return fmt.Errorf("write checked_out_books for user %d: status %d", userUID, ch.Status)
	}
	return nil
}
