package types

// Standard table names.
const (
	BooksTable = "books"
	UsersTable = "users"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	BooksTable,
	UsersTable,
}

// RecordStore is the contract a table worker executes commands against.
// Get returns matching records (or projected values) in the store's natural
// order; zero matches is an empty result, not an error. Delete returns a
// *ConflictError when a guard refuses the removal.
type RecordStore interface {
	Get(filter *Filter, column string) (records []any, values []any, err error)
	Change(spec ChangeSpec) error
	Delete(field string, compare any) error
	Add(record any) error
}
