package types

// Reply status codes. Conflicts are first-class recoverable outcomes, not
// errors: they signal an illegal lending-state transition.
const (
	StatusFailed   = 0
	StatusOK       = 1
	StatusConflict = 2
)

// Reply is a store worker's answer to one command.
//
// For get commands, Records holds full records (*Book or *User) or Values
// holds projected column values; an empty result is not an error. For all
// other commands Status is authoritative, with Reason and User populated on
// conflicts and DueDate on successful checkout/renew.
type Reply struct {
	Status  int
	Reason  string // conflict: the book's current check-in status
	User    int64  // conflict: uid holding the book, 0 when none
	DueDate int64  // checkout/renew: Unix due date
	Records []any  // get: full records, store's natural order
	Values  []any  // get: projected column values, same order
}

// OKReply returns a plain success reply.
func OKReply() Reply {
	return Reply{Status: StatusOK}
}

// FailedReply returns a plain failure reply.
func FailedReply() Reply {
	return Reply{Status: StatusFailed}
}

// ConflictReply returns a conflict reply carrying the blocking status and
// the holder's uid.
func ConflictReply(reason string, user int64) Reply {
	return Reply{Status: StatusConflict, Reason: reason, User: user}
}

// ReplyForError maps an operation outcome to a reply: nil is success, a
// *ConflictError carries its diagnostics, anything else is a plain failure.
func ReplyForError(err error) Reply {
	if err == nil {
		return OKReply()
	}
	if conflict, ok := AsConflict(err); ok {
		return ConflictReply(conflict.Reason, conflict.User)
	}
	return FailedReply()
}
