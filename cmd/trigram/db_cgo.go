//go:build cgo_sqlite

package main

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriver = "sqlite3"

// initDB opens the corpus cache with mattn/go-sqlite3. Concurrent CLI runs
// wait on each other's writes instead of failing with SQLITE_BUSY.
func initDB(path string) (*sql.DB, error) {
	return sql.Open(sqliteDriver, "file:"+path+"?_busy_timeout=5000&_journal_mode=WAL")
}
