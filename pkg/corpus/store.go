package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// ErrNotFound is returned when a book is not in the cache.
var ErrNotFound = errors.New("corpus: book not found")

// Text is a cached book: its boilerplate-free body plus where it came from.
type Text struct {
	BookID    int
	Title     string
	Source    string
	Body      string
	FetchedAt time.Time
}

// TextInfo describes a cached book without its body.
type TextInfo struct {
	BookID    int
	Title     string
	Source    string
	Size      int
	FetchedAt time.Time
}

// SetupSchema creates the cache table in db. It is idempotent and safe to
// call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaTexts = `
CREATE TABLE IF NOT EXISTS corpus_texts (
    book_id    INTEGER PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    source     TEXT NOT NULL,
    body       TEXT NOT NULL,
    fetched_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schemaTexts); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}
	return nil
}

// Store is a SQLite-backed cache of downloaded book texts. It holds prepared
// statements for every query it runs.
type Store struct {
	db         *sql.DB
	stmtGet    *sql.Stmt
	stmtPut    *sql.Stmt
	stmtList   *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// NewStore prepares the cache's statements against db. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	stmts, err := prepareStatements(db,
		`SELECT title, source, body, fetched_at FROM corpus_texts WHERE book_id = ?;`,
		`INSERT INTO corpus_texts (book_id, title, source, body, fetched_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(book_id) DO UPDATE SET title = excluded.title, source = excluded.source, body = excluded.body, fetched_at = excluded.fetched_at;`,
		`SELECT book_id, title, source, length(body), fetched_at FROM corpus_texts ORDER BY book_id;`,
		`DELETE FROM corpus_texts WHERE book_id = ?;`,
	)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtGet:    stmts[0],
		stmtPut:    stmts[1],
		stmtList:   stmts[2],
		stmtRemove: stmts[3],
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

type preparer interface {
	Prepare(query string) (*sql.Stmt, error)
}

// prepareStatements prepares queries in order. If one fails, the statements
// already prepared are closed before the error is returned.
func prepareStatements(p preparer, queries ...string) ([]*sql.Stmt, error) {
	stmts := make([]*sql.Stmt, 0, len(queries))
	for _, query := range queries {
		stmt, err := p.Prepare(query)
		if err != nil {
			for _, prepared := range stmts {
				_ = prepared.Close()
			}
			return nil, fmt.Errorf("failed to prepare corpus statement: %w", err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// Close releases the prepared statements. The database itself is left open.
func (s *Store) Close() {
	_ = s.stmtGet.Close()
	_ = s.stmtPut.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Get returns the cached text for bookID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, bookID int) (Text, error) {
	text := Text{BookID: bookID}
	var fetchedAt int64
	err := s.stmtGet.QueryRowContext(ctx, bookID).Scan(&text.Title, &text.Source, &text.Body, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Text{}, ErrNotFound
		}
		return Text{}, fmt.Errorf("could not get book %d: %w", bookID, err)
	}
	text.FetchedAt = time.Unix(fetchedAt, 0)
	return text, nil
}

// Put inserts or replaces a cached text. A zero FetchedAt is stored as now.
func (s *Store) Put(ctx context.Context, text Text) error {
	if text.FetchedAt.IsZero() {
		text.FetchedAt = time.Now()
	}
	_, err := s.stmtPut.ExecContext(ctx, text.BookID, text.Title, text.Source, text.Body, text.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("could not store book %d: %w", text.BookID, err)
	}
	s.logger.DebugContext(ctx, "Book cached",
		slog.Int("book_id", text.BookID),
		slog.String("title", text.Title),
		slog.Int("bytes", len(text.Body)),
	)
	return nil
}

// List describes every cached text, ordered by book id.
func (s *Store) List(ctx context.Context) ([]TextInfo, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []TextInfo
	for rows.Next() {
		var info TextInfo
		var fetchedAt int64
		if err = rows.Scan(&info.BookID, &info.Title, &info.Source, &info.Size, &fetchedAt); err != nil {
			return nil, err
		}
		info.FetchedAt = time.Unix(fetchedAt, 0)
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Remove deletes a cached text. Removing a book that is not cached returns ErrNotFound.
func (s *Store) Remove(ctx context.Context, bookID int) error {
	res, err := s.stmtRemove.ExecContext(ctx, bookID)
	if err != nil {
		return fmt.Errorf("could not remove book %d: %w", bookID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.logger.InfoContext(ctx, "Book removed from cache", slog.Int("book_id", bookID))
	return nil
}
