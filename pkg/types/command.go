package types

// CmdType discriminates the command envelope. Workers reply to every known
// command type; an unknown type gets no reply.
type CmdType string

// Known command types.
const (
	CmdGet      CmdType = "get"
	CmdChange   CmdType = "ch"
	CmdDelete   CmdType = "del"
	CmdAdd      CmdType = "add"
	CmdCheckout CmdType = "checkout"
	CmdCheckin  CmdType = "checkin"
	CmdRenew    CmdType = "renew"
)

// ColumnAll selects the full record in a get command.
const ColumnAll = "*"

// Filter selects records by a single field-equality predicate. Richer
// queries are expressed as multiple round trips.
type Filter struct {
	Field   string
	Compare any
}

// ChangeSpec describes a field replacement: set ChField to New on every
// record where SearchTerm equals SearchValue.
type ChangeSpec struct {
	ChField     string
	New         any
	SearchTerm  string
	SearchValue any
}

// LendRequest identifies the book and borrower of a lending operation.
type LendRequest struct {
	BookUID int64
	UserUID int64
}

// Command is the envelope sent to a store worker. Only the fields belonging
// to its CmdType are populated; build commands with the New*Command
// constructors so no partially-filled envelope is ever shared or reused.
type Command struct {
	CmdType  CmdType
	Filter   *Filter     // get, del
	Column   string      // get projection; ColumnAll for the full record
	Settings *ChangeSpec // ch
	Data     any         // add: *Book or *User
	Lend     *LendRequest
}

// NewGetCommand builds a get command. A nil filter matches all records.
// An empty column selects the full record.
func NewGetCommand(filter *Filter, column string) Command {
	if column == "" {
		column = ColumnAll
	}
	return Command{CmdType: CmdGet, Filter: filter, Column: column}
}

// NewChangeCommand builds a ch command replacing chField with newValue on
// every record where searchTerm equals searchValue.
func NewChangeCommand(chField string, newValue any, searchTerm string, searchValue any) Command {
	return Command{CmdType: CmdChange, Settings: &ChangeSpec{
		ChField:     chField,
		New:         newValue,
		SearchTerm:  searchTerm,
		SearchValue: searchValue,
	}}
}

// NewDeleteCommand builds a del command removing every record where field
// equals compare.
func NewDeleteCommand(field string, compare any) Command {
	return Command{CmdType: CmdDelete, Filter: &Filter{Field: field, Compare: compare}}
}

// NewAddCommand builds an add command inserting the given record
// (*Book or *User, matching the target store).
func NewAddCommand(record any) Command {
	return Command{CmdType: CmdAdd, Data: record}
}

// NewCheckoutCommand builds a checkout command for the book/user pair.
func NewCheckoutCommand(bookUID, userUID int64) Command {
	return Command{CmdType: CmdCheckout, Lend: &LendRequest{BookUID: bookUID, UserUID: userUID}}
}

// NewCheckinCommand builds a checkin command for the book/user pair.
func NewCheckinCommand(bookUID, userUID int64) Command {
	return Command{CmdType: CmdCheckin, Lend: &LendRequest{BookUID: bookUID, UserUID: userUID}}
}

// NewRenewCommand builds a renew command for the book/user pair.
func NewRenewCommand(bookUID, userUID int64) Command {
	return Command{CmdType: CmdRenew, Lend: &LendRequest{BookUID: bookUID, UserUID: userUID}}
}
