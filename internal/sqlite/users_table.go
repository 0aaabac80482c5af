package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	log "github.com/sirupsen/logrus"

	"github.com/drauger-os/golibman/pkg/types"
)

// Compile-time interface check.
var _ types.RecordStore = (*userStore)(nil)

// userStore implements the record-store contract for the users table.
type userStore struct {
	backend *Backend
}

// Get returns matching users in the table's natural order, or projected
// column values when column names a single field.
func (s *userStore) Get(filter *types.Filter, column string) ([]any, []any, error) {
	query, args, err := buildSelect(types.UsersTable, userColumns, filter, column)
	if err != nil {
		return nil, nil, err
	}

	if column != types.ColumnAll {
		values, err := queryValues(s.backend.db, query, args, userJSONColumns[column])
		return nil, values, err
	}

	rows, err := s.backend.db.Query(query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	records := []any{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, user)
	}
	return records, nil, rows.Err()
}

// scanUser hydrates one row into a *types.User. An unparseable structured
// column is logged and left at its zero value.
func scanUser(rows *sql.Rows) (*types.User, error) {
	var (
		u       types.User
		contact string
		books   string
	)
	if err := rows.Scan(&u.UID, &u.Name, &contact, &books, &u.Privs); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if err := codec.UnmarshalFromString(contact, &u.ContactInfo); err != nil {
		log.WithFields(log.Fields{"uid": u.UID, "column": "contact_info"}).
			Warn("unparseable structured column")
	}
	if err := codec.UnmarshalFromString(books, &u.CheckedOutBooks); err != nil {
		log.WithFields(log.Fields{"uid": u.UID, "column": "checked_out_books"}).
			Warn("unparseable structured column")
	}
	return &u, nil
}

// Change replaces a field on every user matching the search predicate.
func (s *userStore) Change(spec types.ChangeSpec) error {
	query, args, err := buildChange(types.UsersTable, userColumns, spec)
	if err != nil {
		return err
	}
	_, err = s.backend.db.Exec(query, args...)
	return err
}

// Delete removes every user matching the predicate. User deletes carry no
// guard.
func (s *userStore) Delete(field string, compare any) error {
	query, args, err := buildDelete(types.UsersTable, userColumns, field, compare)
	if err != nil {
		return err
	}
	_, err = s.backend.db.Exec(query, args...)
	return err
}

// Add inserts a fully-populated user. A duplicate uid fails on the primary
// key constraint.
func (s *userStore) Add(record any) error {
	user, ok := record.(*types.User)
	if !ok {
		return types.ErrInvalidRecord
	}
	if err := user.Validate(); err != nil {
		return err
	}

	contact, err := codec.MarshalToString(user.ContactInfo)
	if err != nil {
		return fmt.Errorf("encode contact_info: %w", err)
	}
	books, err := codec.MarshalToString(user.CheckedOutBooks)
	if err != nil {
		return fmt.Errorf("encode checked_out_books: %w", err)
	}

	query, args, err := buildInsert(types.UsersTable, goqu.Record{
		"uid":               user.UID,
		"name":              user.Name,
		"contact_info":      contact,
		"checked_out_books": books,
		"privs":             user.Privs,
	})
	if err != nil {
		return err
	}
	_, err = s.backend.db.Exec(query, args...)
	return err
}
