package types

// Privilege levels for users.
const (
	PrivsUser  = "user"
	PrivsAdmin = "admin"
)

// validPrivs is the set of recognized privilege values.
var validPrivs = map[string]bool{
	PrivsUser:  true,
	PrivsAdmin: true,
}

// ContactInfo holds a user's contact details.
type ContactInfo struct {
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
}

// NewContactInfo returns empty contact info with non-nil slices, so the
// serialized form is always a pair of JSON arrays.
func NewContactInfo() ContactInfo {
	return ContactInfo{PhoneNumbers: []string{}, Emails: []string{}}
}

// User is one record of the users table.
type User struct {
	UID             int64       `json:"uid"`
	Name            string      `json:"name"`
	ContactInfo     ContactInfo `json:"contact_info"`
	CheckedOutBooks []int64     `json:"checked_out_books"`
	Privs           string      `json:"privs"`
}

// NewUser returns a user with the given identity, no books out, and the
// plain "user" privilege level.
func NewUser(uid int64, name string) *User {
	return &User{
		UID:             uid,
		Name:            name,
		ContactInfo:     NewContactInfo(),
		CheckedOutBooks: []int64{},
		Privs:           PrivsUser,
	}
}

// Validate checks that the privilege value is recognized.
func (u *User) Validate() error {
	if !validPrivs[u.Privs] {
		return ErrInvalidPrivs
	}
	return nil
}

// HasBook reports whether the book uid is in the user's checked-out set.
func (u *User) HasBook(bookUID int64) bool {
	for _, b := range u.CheckedOutBooks {
		if b == bookUID {
			return true
		}
	}
	return false
}

// WithBook returns the checked-out set with bookUID appended. The receiver
// is not modified.
func (u *User) WithBook(bookUID int64) []int64 {
	out := make([]int64, 0, len(u.CheckedOutBooks)+1)
	out = append(out, u.CheckedOutBooks...)
	return append(out, bookUID)
}

// WithoutBook returns the checked-out set with every occurrence of bookUID
// removed. The receiver is not modified.
func (u *User) WithoutBook(bookUID int64) []int64 {
	out := make([]int64, 0, len(u.CheckedOutBooks))
	for _, b := range u.CheckedOutBooks {
		if b != bookUID {
			out = append(out, b)
		}
	}
	return out
}
