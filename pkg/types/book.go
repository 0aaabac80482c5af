package types

// Check-in status values. A book is in exactly one of these at any time.
const (
	StatusCheckedIn   = "checked_in"
	StatusCheckedOut  = "checked_out"
	StatusUnavailable = "unavailable"
	StatusMissing     = "missing"
)

// validStatuses is the set of recognized check-in status values.
var validStatuses = map[string]bool{
	StatusCheckedIn:   true,
	StatusCheckedOut:  true,
	StatusUnavailable: true,
	StatusMissing:     true,
}

// Status describes the current availability of a book. Possession is the uid
// of the user holding the book and is nil exactly when the book is checked in.
// DueDate is a Unix timestamp, meaningful only while checked out.
type Status struct {
	Status     string `json:"status"`
	Possession *int64 `json:"possession"`
	DueDate    int64  `json:"due_date"`
}

// NewStatus returns the default status: checked in, held by nobody, no due date.
func NewStatus() Status {
	return Status{Status: StatusCheckedIn}
}

// Holder returns the possessing user's uid, or 0 when the book is checked in.
func (s Status) Holder() int64 {
	if s.Possession == nil {
		return 0
	}
	return *s.Possession
}

// Validate checks that the status value is recognized.
func (s Status) Validate() error {
	if !validStatuses[s.Status] {
		return ErrInvalidStatus
	}
	return nil
}

// CheckoutRecord is one entry of a book's checkout history. The history is
// ordered newest first; entry 0 is the current loan while the book is out.
type CheckoutRecord struct {
	UID        int64 `json:"uid"`
	CheckedOut int64 `json:"checked_out"`
	DueDate    int64 `json:"due_date"`
	Returned   bool  `json:"returned"`
}

// Book is one record of the books table. UID values are assigned by the
// caller and never reused while the record exists.
type Book struct {
	UID             int64            `json:"uid"`
	Name            string           `json:"name"`
	Published       int64            `json:"published"`
	CheckInStatus   Status           `json:"check_in_status"`
	CheckOutHistory []CheckoutRecord `json:"check_out_history"`
}

// NewBook returns a book with the given identity, checked in with an empty
// checkout history.
func NewBook(uid int64, name string, published int64) *Book {
	return &Book{
		UID:             uid,
		Name:            name,
		Published:       published,
		CheckInStatus:   NewStatus(),
		CheckOutHistory: []CheckoutRecord{},
	}
}
