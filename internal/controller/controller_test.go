package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drauger-os/golibman/internal/barcode"
	"github.com/drauger-os/golibman/internal/lending"
	"github.com/drauger-os/golibman/internal/sqlite"
	"github.com/drauger-os/golibman/internal/worker"
	"github.com/drauger-os/golibman/pkg/types"
)

// fixedSource yields the same frame forever.
type fixedSource struct {
	frame []byte
}

func (s fixedSource) Frame() ([]byte, error) { return s.frame, nil }

type passDecoder struct{}

func (passDecoder) Decode(frame []byte) [][]byte {
	if len(frame) == 0 {
		return nil
	}
	return [][]byte{frame}
}

// setupController wires the full worker set over a fresh backend. The
// controller's Shutdown runs on cleanup, before the backend detaches.
func setupController(t *testing.T, scanner *barcode.Scanner) *Controller {
	t.Helper()

	backend := sqlite.NewBackend()
	settings := types.NewSettings()
	settings.DataDir = t.TempDir()
	require.NoError(t, backend.Attach(settings))
	t.Cleanup(func() { backend.Detach() })

	bookStore, err := backend.GetStore(types.BooksTable)
	require.NoError(t, err)
	userStore, err := backend.GetStore(types.UsersTable)
	require.NoError(t, err)

	users := worker.New(types.UsersTable, userStore).Start()
	engine := lending.NewEngine(bookStore, users, settings)
	books := worker.New(types.BooksTable, bookStore).WithLending(engine).Start()

	c := New(books, users, scanner)
	t.Cleanup(c.Shutdown)
	return c
}

func TestDispatchRouting(t *testing.T) {
	c := setupController(t, nil)

	replies := c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewAddCommand(types.NewBook(1, "Solaris", 1961)),
	})
	require.Len(t, replies, 1)
	assert.Equal(t, types.StatusOK, replies[0].Status)

	replies = c.Dispatch(Envelope{
		Table:   TableUser,
		Command: types.NewAddCommand(types.NewUser(1, "Kris")),
	})
	require.Len(t, replies, 1)
	assert.Equal(t, types.StatusOK, replies[0].Status)

	// "both" returns the book store's reply first, then the user store's.
	replies = c.Dispatch(Envelope{
		Table: TableBoth,
		Command: types.NewGetCommand(
			&types.Filter{Field: "uid", Compare: int64(1)}, types.ColumnAll),
	})
	require.Len(t, replies, 2)
	require.Equal(t, types.StatusOK, replies[0].Status)
	require.Equal(t, types.StatusOK, replies[1].Status)
	require.Len(t, replies[0].Records, 1)
	require.Len(t, replies[1].Records, 1)
	assert.IsType(t, &types.Book{}, replies[0].Records[0])
	assert.IsType(t, &types.User{}, replies[1].Records[0])
}

func TestDispatchUnknownTable(t *testing.T) {
	c := setupController(t, nil)

	replies := c.Dispatch(Envelope{Table: "shelf"})
	require.Len(t, replies, 1)
	assert.Equal(t, types.StatusFailed, replies[0].Status)
}

func TestBarcodeWithoutScanner(t *testing.T) {
	c := setupController(t, nil)

	assert.Equal(t, types.StatusFailed, c.GetBarcode().Status)

	replies := c.Dispatch(Envelope{Table: TableBarcode})
	require.Len(t, replies, 1)
	assert.Equal(t, types.StatusFailed, replies[0].Status)
}

func TestGetBarcodeResolvesUser(t *testing.T) {
	scanner := barcode.NewScanner(
		fixedSource{frame: []byte(`{"type": "user", "uid": 1000}`)},
		passDecoder{}, time.Millisecond).Start()
	c := setupController(t, scanner)

	require.Equal(t, types.StatusOK, c.Dispatch(Envelope{
		Table:   TableUser,
		Command: types.NewAddCommand(types.NewUser(1000, "Ged")),
	})[0].Status)

	reply := c.GetBarcode()
	require.Equal(t, types.StatusOK, reply.Status)
	require.Len(t, reply.Records, 1)
	assert.Equal(t, "Ged", reply.Records[0].(*types.User).Name)
}

func TestGetBarcodeUnknownUID(t *testing.T) {
	scanner := barcode.NewScanner(
		fixedSource{frame: []byte(`{"type": "book", "uid": 404}`)},
		passDecoder{}, time.Millisecond).Start()
	c := setupController(t, scanner)

	// The store answers; it just has no matching record.
	reply := c.GetBarcode()
	require.Equal(t, types.StatusOK, reply.Status)
	assert.Empty(t, reply.Records)
}

// TestLendingLifecycle walks one book and one user through checkout,
// renewal, and return, observing the stored state between steps.
func TestLendingLifecycle(t *testing.T) {
	c := setupController(t, nil)

	require.Equal(t, types.StatusOK, c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewAddCommand(types.NewBook(1000, "The Dispossessed", 1974)),
	})[0].Status)
	require.Equal(t, types.StatusOK, c.Dispatch(Envelope{
		Table:   TableUser,
		Command: types.NewAddCommand(types.NewUser(1000, "Shevek")),
	})[0].Status)

	reply := c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewCheckoutCommand(1000, 1000),
	})[0]
	require.Equal(t, types.StatusOK, reply.Status)
	assert.Greater(t, reply.DueDate, time.Now().Unix())

	// Deleting a checked-out book is refused with the holder's uid.
	reply = c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewDeleteCommand("uid", int64(1000)),
	})[0]
	assert.Equal(t, types.StatusConflict, reply.Status)
	assert.Equal(t, types.StatusCheckedOut, reply.Reason)
	assert.Equal(t, int64(1000), reply.User)

	reply = c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewRenewCommand(1000, 1000),
	})[0]
	require.Equal(t, types.StatusOK, reply.Status)

	reply = c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewCheckinCommand(1000, 1000),
	})[0]
	require.Equal(t, types.StatusOK, reply.Status)

	reply = c.Dispatch(Envelope{
		Table: TableUser,
		Command: types.NewGetCommand(
			&types.Filter{Field: "uid", Compare: int64(1000)}, "checked_out_books"),
	})[0]
	require.Equal(t, types.StatusOK, reply.Status)
	require.Len(t, reply.Values, 1)
	assert.Empty(t, reply.Values[0])

	// Now that it is back on the shelf, deletion goes through.
	reply = c.Dispatch(Envelope{
		Table:   TableBook,
		Command: types.NewDeleteCommand("uid", int64(1000)),
	})[0]
	assert.Equal(t, types.StatusOK, reply.Status)
}

func TestShutdownIsOrderly(t *testing.T) {
	backend := sqlite.NewBackend()
	settings := types.NewSettings()
	settings.DataDir = t.TempDir()
	require.NoError(t, backend.Attach(settings))
	t.Cleanup(func() { backend.Detach() })

	bookStore, err := backend.GetStore(types.BooksTable)
	require.NoError(t, err)
	userStore, err := backend.GetStore(types.UsersTable)
	require.NoError(t, err)

	users := worker.New(types.UsersTable, userStore).Start()
	engine := lending.NewEngine(bookStore, users, settings)
	books := worker.New(types.BooksTable, bookStore).WithLending(engine).Start()
	scanner := barcode.NewScanner(fixedSource{}, passDecoder{}, time.Millisecond).Start()

	c := New(books, users, scanner)
	c.Shutdown()

	// All loops have exited; a fresh set can attach to the same stores.
	users = worker.New(types.UsersTable, userStore).Start()
	t.Cleanup(users.Stop)
	reply := users.Send(types.NewGetCommand(nil, types.ColumnAll))
	assert.Equal(t, types.StatusOK, reply.Status)
}
