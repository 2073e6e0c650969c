//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const sqliteDriver = "sqlite"

// initDB opens the corpus cache with the pure Go driver, using the same
// pragmas as the cgo build.
func initDB(path string) (*sql.DB, error) {
	return sql.Open(sqliteDriver, "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
}
