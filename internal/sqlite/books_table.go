package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	log "github.com/sirupsen/logrus"

	"github.com/drauger-os/golibman/pkg/types"
)

// Compile-time interface check.
var _ types.RecordStore = (*bookStore)(nil)

// bookStore implements the record-store contract for the books table.
type bookStore struct {
	backend *Backend
}

// Get returns matching books in the table's natural order, or projected
// column values when column names a single field. Zero matches is an empty
// result, not an error.
func (s *bookStore) Get(filter *types.Filter, column string) ([]any, []any, error) {
	query, args, err := buildSelect(types.BooksTable, bookColumns, filter, column)
	if err != nil {
		return nil, nil, err
	}

	if column != types.ColumnAll {
		values, err := queryValues(s.backend.db, query, args, bookJSONColumns[column])
		return nil, values, err
	}

	rows, err := s.backend.db.Query(query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	records := []any{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, book)
	}
	return records, nil, rows.Err()
}

// scanBook hydrates one row into a *types.Book. An unparseable structured
// column is logged and left at its zero value.
func scanBook(rows *sql.Rows) (*types.Book, error) {
	var (
		b       types.Book
		history string
		status  string
	)
	if err := rows.Scan(&b.UID, &b.Name, &history, &status, &b.Published); err != nil {
		return nil, fmt.Errorf("scan book: %w", err)
	}
	if err := codec.UnmarshalFromString(history, &b.CheckOutHistory); err != nil {
		log.WithFields(log.Fields{"uid": b.UID, "column": "check_out_history"}).
			Warn("unparseable structured column")
	}
	if err := codec.UnmarshalFromString(status, &b.CheckInStatus); err != nil {
		log.WithFields(log.Fields{"uid": b.UID, "column": "check_in_status"}).
			Warn("unparseable structured column")
	}
	return &b, nil
}

// Change replaces a field on every book matching the search predicate.
func (s *bookStore) Change(spec types.ChangeSpec) error {
	query, args, err := buildChange(types.BooksTable, bookColumns, spec)
	if err != nil {
		return err
	}
	_, err = s.backend.db.Exec(query, args...)
	return err
}

// Delete removes every book matching the predicate, refusing with a
// *ConflictError if any targeted book is not checked in. The guard reads
// before deleting; the store's one-command-at-a-time loop is what keeps the
// two steps from interleaving with other writers.
func (s *bookStore) Delete(field string, compare any) error {
	records, _, err := s.Get(&types.Filter{Field: field, Compare: compare}, types.ColumnAll)
	if err != nil {
		return err
	}
	for _, r := range records {
		book := r.(*types.Book)
		if book.CheckInStatus.Status != types.StatusCheckedIn {
			return &types.ConflictError{
				Reason: book.CheckInStatus.Status,
				User:   book.CheckInStatus.Holder(),
			}
		}
	}

	query, args, err := buildDelete(types.BooksTable, bookColumns, field, compare)
	if err != nil {
		return err
	}
	_, err = s.backend.db.Exec(query, args...)
	return err
}

// Add inserts a fully-populated book. A duplicate uid fails on the primary
// key constraint.
func (s *bookStore) Add(record any) error {
	book, ok := record.(*types.Book)
	if !ok {
		return types.ErrInvalidRecord
	}

	history, err := codec.MarshalToString(book.CheckOutHistory)
	if err != nil {
		return fmt.Errorf("encode check_out_history: %w", err)
	}
	status, err := codec.MarshalToString(book.CheckInStatus)
	if err != nil {
		return fmt.Errorf("encode check_in_status: %w", err)
	}

	query, args, err := buildInsert(types.BooksTable, goqu.Record{
		"uid":               book.UID,
		"name":              book.Name,
		"check_out_history": history,
		"check_in_status":   status,
		"published":         book.Published,
	})
	if err != nil {
		return err
	}
	_, err = s.backend.db.Exec(query, args...)
	return err
}
