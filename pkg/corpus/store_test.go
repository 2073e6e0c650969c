package corpus

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()
	fetched := time.Unix(1700000000, 0)

	want := Text{BookID: 11, Title: "Alice", Source: "https://example.org/11.txt", Body: "down the rabbit hole", FetchedAt: fetched}
	require.NoError(t, store.Put(ctx, want))

	got, err := store.Get(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Source, got.Source)
	assert.Equal(t, want.Body, got.Body)
	assert.True(t, fetched.Equal(got.FetchedAt))
}

func TestStoreGetMissing(t *testing.T) {
	_, store := newTestStore(t)
	_, err := store.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorePutReplaces(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Text{BookID: 84, Source: "a", Body: "old"}))
	require.NoError(t, store.Put(ctx, Text{BookID: 84, Title: "Frankenstein", Source: "b", Body: "new body"}))

	got, err := store.Get(ctx, 84)
	require.NoError(t, err)
	assert.Equal(t, "new body", got.Body)
	assert.Equal(t, "Frankenstein", got.Title)
	assert.False(t, got.FetchedAt.IsZero())
}

func TestStoreListAndRemove(t *testing.T) {
	db, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Text{BookID: 98, Title: "A Tale of Two Cities", Source: "x", Body: "it was the best of times"}))
	require.NoError(t, store.Put(ctx, Text{BookID: 11, Title: "Alice", Source: "y", Body: "alice"}))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 11, infos[0].BookID)
	assert.Equal(t, 5, infos[0].Size)
	assert.Equal(t, 98, infos[1].BookID)

	require.NoError(t, store.Remove(ctx, 11))
	assert.ErrorIs(t, store.Remove(ctx, 11), ErrNotFound)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM corpus_texts").Scan(&count))
	assert.Equal(t, 1, count)
}

// recordingPreparer remembers every statement it hands out and fails on
// the query named by failOn.
type recordingPreparer struct {
	db     *sql.DB
	failOn string
	stmts  []*sql.Stmt
}

var errPrepare = errors.New("prepare failed")

func (r *recordingPreparer) Prepare(query string) (*sql.Stmt, error) {
	if query == r.failOn {
		return nil, errPrepare
	}
	stmt, err := r.db.Prepare(query)
	if err == nil {
		r.stmts = append(r.stmts, stmt)
	}
	return stmt, err
}

func TestPrepareStatementsClosesOnFailure(t *testing.T) {
	db, _ := newTestStore(t)
	rec := &recordingPreparer{db: db, failOn: "broken"}

	stmts, err := prepareStatements(rec,
		`SELECT body FROM corpus_texts WHERE book_id = ?;`,
		`DELETE FROM corpus_texts WHERE book_id = ?;`,
		"broken",
	)
	require.ErrorIs(t, err, errPrepare)
	assert.Nil(t, stmts)
	require.Len(t, rec.stmts, 2)

	for _, stmt := range rec.stmts {
		_, err = stmt.Exec(1)
		assert.ErrorContains(t, err, "statement is closed")
	}
}

func TestPrepareStatements(t *testing.T) {
	db, _ := newTestStore(t)

	stmts, err := prepareStatements(db, `DELETE FROM corpus_texts WHERE book_id = ?;`)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	t.Cleanup(func() { _ = stmts[0].Close() })

	_, err = stmts[0].Exec(1)
	assert.NoError(t, err)
}
