package sqlite

import (
	"database/sql"
	"slices"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/drauger-os/golibman/pkg/types"
)

// dialect builds every statement the stores run. Identifiers are quoted and
// values bound, never concatenated into SQL text.
var dialect = goqu.Dialect("sqlite3")

func columnKnown(columns []string, name string) bool {
	return slices.Contains(columns, name)
}

// buildSelect builds the SELECT for a get command over the given table.
// The filter is at most one equality predicate; column narrows the
// projection to one named field, or ColumnAll for the full record.
func buildSelect(table string, columns []string, filter *types.Filter, column string) (string, []any, error) {
	selected := columns
	if column != types.ColumnAll {
		if !columnKnown(columns, column) {
			return "", nil, types.ErrInvalidColumn
		}
		selected = []string{column}
	}

	cols := make([]any, len(selected))
	for i, c := range selected {
		cols[i] = c
	}

	ds := dialect.From(table).Select(cols...)
	if filter != nil {
		if !columnKnown(columns, filter.Field) {
			return "", nil, types.ErrInvalidColumn
		}
		compare, err := encodeValue(filter.Compare)
		if err != nil {
			return "", nil, err
		}
		ds = ds.Where(goqu.C(filter.Field).Eq(compare))
	}

	return ds.Prepared(true).ToSQL()
}

// buildChange builds the UPDATE for a ch command.
func buildChange(table string, columns []string, spec types.ChangeSpec) (string, []any, error) {
	if !columnKnown(columns, spec.ChField) || !columnKnown(columns, spec.SearchTerm) {
		return "", nil, types.ErrInvalidColumn
	}

	newValue, err := encodeValue(spec.New)
	if err != nil {
		return "", nil, err
	}
	searchValue, err := encodeValue(spec.SearchValue)
	if err != nil {
		return "", nil, err
	}

	ds := dialect.Update(table).
		Set(goqu.Record{spec.ChField: newValue}).
		Where(goqu.C(spec.SearchTerm).Eq(searchValue))
	return ds.Prepared(true).ToSQL()
}

// buildDelete builds the DELETE for a del command.
func buildDelete(table string, columns []string, field string, compare any) (string, []any, error) {
	if !columnKnown(columns, field) {
		return "", nil, types.ErrInvalidColumn
	}

	value, err := encodeValue(compare)
	if err != nil {
		return "", nil, err
	}

	ds := dialect.Delete(table).Where(goqu.C(field).Eq(value))
	return ds.Prepared(true).ToSQL()
}

// buildInsert builds the INSERT for an add command.
func buildInsert(table string, record goqu.Record) (string, []any, error) {
	return dialect.Insert(table).Rows(record).Prepared(true).ToSQL()
}

// queryValues runs a single-column projection. For JSON text columns the
// stored text is parsed into a structured value; text that is not valid
// JSON passes through unchanged.
func queryValues(db *sql.DB, query string, args []any, isJSON bool) ([]any, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []any{}
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if text, ok := v.(string); ok && isJSON {
			v = decodeColumn(text)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
