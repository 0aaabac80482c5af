// Package sqlite implements the SQLite record stores for golibman. Each
// store owns one table and executes the get/ch/del/add contract against it;
// structured fields are serialized as JSON text columns.
package sqlite

// Schema DDL. Tables are created on attach if missing; the database file is
// durable across runs. uid is the caller-assigned identity, so the primary
// key constraint turns a duplicate add into a write failure.
const (
	createBooks = `CREATE TABLE IF NOT EXISTS books (
    uid INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    check_out_history TEXT NOT NULL,
    check_in_status TEXT NOT NULL,
    published INTEGER NOT NULL
);`

	createUsers = `CREATE TABLE IF NOT EXISTS users (
    uid INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    contact_info TEXT NOT NULL,
    checked_out_books TEXT NOT NULL,
    privs TEXT NOT NULL
);`
)

// Column orders match the DDL; SELECT and INSERT use them explicitly.
var (
	bookColumns = []string{"uid", "name", "check_out_history", "check_in_status", "published"}
	userColumns = []string{"uid", "name", "contact_info", "checked_out_books", "privs"}
)

// Columns holding JSON-serialized structured values.
var (
	bookJSONColumns = map[string]bool{
		"check_out_history": true,
		"check_in_status":   true,
	}
	userJSONColumns = map[string]bool{
		"contact_info":      true,
		"checked_out_books": true,
	}
)
