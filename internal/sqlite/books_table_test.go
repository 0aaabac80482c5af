package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drauger-os/golibman/pkg/types"
)

func bookStoreFor(t *testing.T) types.RecordStore {
	t.Helper()
	b := setupBackend(t)
	store, err := b.GetStore(types.BooksTable)
	require.NoError(t, err)
	return store
}

func TestBookAddGetRoundTrip(t *testing.T) {
	store := bookStoreFor(t)

	book := types.NewBook(1000, "The Left Hand of Darkness", 1969)
	require.NoError(t, store.Add(book))

	records, values, err := store.Get(
		&types.Filter{Field: "uid", Compare: int64(1000)}, types.ColumnAll)
	require.NoError(t, err)
	assert.Nil(t, values)
	require.Len(t, records, 1)

	got := records[0].(*types.Book)
	assert.Equal(t, book.UID, got.UID)
	assert.Equal(t, book.Name, got.Name)
	assert.Equal(t, book.Published, got.Published)
	assert.Equal(t, types.StatusCheckedIn, got.CheckInStatus.Status)
	assert.Nil(t, got.CheckInStatus.Possession)
	assert.Empty(t, got.CheckOutHistory)
}

func TestBookGetNoMatchIsEmpty(t *testing.T) {
	store := bookStoreFor(t)

	records, _, err := store.Get(
		&types.Filter{Field: "uid", Compare: int64(404)}, types.ColumnAll)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBookGetAllNaturalOrder(t *testing.T) {
	store := bookStoreFor(t)

	require.NoError(t, store.Add(types.NewBook(1, "First", 1990)))
	require.NoError(t, store.Add(types.NewBook(2, "Second", 1991)))

	records, _, err := store.Get(nil, types.ColumnAll)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].(*types.Book).UID)
	assert.Equal(t, int64(2), records[1].(*types.Book).UID)
}

func TestBookColumnProjection(t *testing.T) {
	store := bookStoreFor(t)
	require.NoError(t, store.Add(types.NewBook(7, "Hyperion", 1989)))

	t.Run("plain column", func(t *testing.T) {
		records, values, err := store.Get(
			&types.Filter{Field: "uid", Compare: int64(7)}, "name")
		require.NoError(t, err)
		assert.Nil(t, records)
		require.Len(t, values, 1)
		assert.Equal(t, "Hyperion", values[0])
	})

	t.Run("structured column parses to a value", func(t *testing.T) {
		_, values, err := store.Get(
			&types.Filter{Field: "uid", Compare: int64(7)}, "check_in_status")
		require.NoError(t, err)
		require.Len(t, values, 1)

		status, ok := values[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, types.StatusCheckedIn, status["status"])
	})

	t.Run("unknown column is rejected", func(t *testing.T) {
		_, _, err := store.Get(nil, "isbn")
		assert.ErrorIs(t, err, types.ErrInvalidColumn)
	})
}

func TestBookProjectionPassesRawTextThrough(t *testing.T) {
	b := setupBackend(t)
	store, err := b.GetStore(types.BooksTable)
	require.NoError(t, err)
	require.NoError(t, store.Add(types.NewBook(9, "Broken", 2000)))

	// Corrupt the structured column behind the store's back.
	_, err = b.db.Exec("UPDATE books SET check_in_status = 'not json' WHERE uid = 9")
	require.NoError(t, err)

	_, values, err := store.Get(
		&types.Filter{Field: "uid", Compare: int64(9)}, "check_in_status")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "not json", values[0])
}

func TestBookChange(t *testing.T) {
	store := bookStoreFor(t)
	require.NoError(t, store.Add(types.NewBook(5, "Draft Title", 2020)))

	t.Run("primitive field", func(t *testing.T) {
		err := store.Change(types.ChangeSpec{
			ChField: "name", New: "Final Title",
			SearchTerm: "uid", SearchValue: int64(5),
		})
		require.NoError(t, err)

		_, values, err := store.Get(&types.Filter{Field: "uid", Compare: int64(5)}, "name")
		require.NoError(t, err)
		assert.Equal(t, []any{"Final Title"}, values)
	})

	t.Run("structured field is stored as JSON", func(t *testing.T) {
		holder := int64(77)
		err := store.Change(types.ChangeSpec{
			ChField: "check_in_status",
			New:     types.Status{Status: types.StatusCheckedOut, Possession: &holder, DueDate: 123},
			SearchTerm: "uid", SearchValue: int64(5),
		})
		require.NoError(t, err)

		records, _, err := store.Get(&types.Filter{Field: "uid", Compare: int64(5)}, types.ColumnAll)
		require.NoError(t, err)
		require.Len(t, records, 1)
		got := records[0].(*types.Book).CheckInStatus
		assert.Equal(t, types.StatusCheckedOut, got.Status)
		assert.Equal(t, int64(77), got.Holder())
		assert.Equal(t, int64(123), got.DueDate)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		err := store.Change(types.ChangeSpec{
			ChField: "isbn", New: "x", SearchTerm: "uid", SearchValue: int64(5),
		})
		assert.ErrorIs(t, err, types.ErrInvalidColumn)
	})
}

func TestBookDuplicateAddFails(t *testing.T) {
	store := bookStoreFor(t)
	require.NoError(t, store.Add(types.NewBook(1, "Original", 1980)))
	assert.Error(t, store.Add(types.NewBook(1, "Duplicate", 1981)))
}

func TestBookAddRejectsWrongType(t *testing.T) {
	store := bookStoreFor(t)
	assert.ErrorIs(t, store.Add(types.NewUser(1, "Not a book")), types.ErrInvalidRecord)
}

func TestBookDeleteGuard(t *testing.T) {
	store := bookStoreFor(t)
	require.NoError(t, store.Add(types.NewBook(1000, "Guarded", 1995)))

	holder := int64(42)
	require.NoError(t, store.Change(types.ChangeSpec{
		ChField: "check_in_status",
		New:     types.Status{Status: types.StatusCheckedOut, Possession: &holder, DueDate: 99},
		SearchTerm: "uid", SearchValue: int64(1000),
	}))

	err := store.Delete("uid", int64(1000))
	conflict, ok := types.AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, types.StatusCheckedOut, conflict.Reason)
	assert.Equal(t, int64(42), conflict.User)

	// The record remains.
	records, _, err := store.Get(&types.Filter{Field: "uid", Compare: int64(1000)}, types.ColumnAll)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestBookDeleteCheckedIn(t *testing.T) {
	store := bookStoreFor(t)
	require.NoError(t, store.Add(types.NewBook(1, "Removable", 1970)))

	require.NoError(t, store.Delete("uid", int64(1)))

	records, _, err := store.Get(nil, types.ColumnAll)
	require.NoError(t, err)
	assert.Empty(t, records)
}
