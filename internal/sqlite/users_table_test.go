package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drauger-os/golibman/pkg/types"
)

func userStoreFor(t *testing.T) types.RecordStore {
	t.Helper()
	b := setupBackend(t)
	store, err := b.GetStore(types.UsersTable)
	require.NoError(t, err)
	return store
}

func TestUserAddGetRoundTrip(t *testing.T) {
	store := userStoreFor(t)

	user := types.NewUser(1000, "Ursula")
	user.ContactInfo.Emails = append(user.ContactInfo.Emails, "ursula@example.org")
	user.ContactInfo.PhoneNumbers = append(user.ContactInfo.PhoneNumbers, "555-0100")
	require.NoError(t, store.Add(user))

	records, _, err := store.Get(
		&types.Filter{Field: "uid", Compare: int64(1000)}, types.ColumnAll)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0].(*types.User)
	assert.Equal(t, user.UID, got.UID)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, types.PrivsUser, got.Privs)
	assert.Equal(t, []string{"ursula@example.org"}, got.ContactInfo.Emails)
	assert.Equal(t, []string{"555-0100"}, got.ContactInfo.PhoneNumbers)
	assert.Empty(t, got.CheckedOutBooks)
}

func TestUserFilterByName(t *testing.T) {
	store := userStoreFor(t)
	require.NoError(t, store.Add(types.NewUser(1, "Ada")))
	require.NoError(t, store.Add(types.NewUser(2, "Grace")))

	records, _, err := store.Get(
		&types.Filter{Field: "name", Compare: "Grace"}, types.ColumnAll)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(2), records[0].(*types.User).UID)
}

func TestUserAddRejectsBadPrivs(t *testing.T) {
	store := userStoreFor(t)
	user := types.NewUser(1, "Eve")
	user.Privs = "root"
	assert.ErrorIs(t, store.Add(user), types.ErrInvalidPrivs)
}

func TestUserChangeCheckedOutBooks(t *testing.T) {
	store := userStoreFor(t)
	require.NoError(t, store.Add(types.NewUser(3, "Alan")))

	err := store.Change(types.ChangeSpec{
		ChField: "checked_out_books", New: []int64{1000, 1001},
		SearchTerm: "uid", SearchValue: int64(3),
	})
	require.NoError(t, err)

	records, _, err := store.Get(&types.Filter{Field: "uid", Compare: int64(3)}, types.ColumnAll)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []int64{1000, 1001}, records[0].(*types.User).CheckedOutBooks)
}

func TestUserDeleteIsUnguarded(t *testing.T) {
	store := userStoreFor(t)

	user := types.NewUser(5, "Leaving")
	user.CheckedOutBooks = []int64{1000} // even with books out
	require.NoError(t, store.Add(user))

	require.NoError(t, store.Delete("uid", int64(5)))

	records, _, err := store.Get(nil, types.ColumnAll)
	require.NoError(t, err)
	assert.Empty(t, records)
}
