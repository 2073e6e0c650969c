package corpus

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestStore creates a SQLite-backed Store in a temporary directory.
func newTestStore(t *testing.T) (*sql.DB, *Store) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "corpus.db")
	db, err := sql.Open("sqlite", dbFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, SetupSchema(db))
	store, err := NewStore(db)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return db, store
}

// bookServer serves sampleBook at /files/{id}/{id}.txt only, so the first
// default-style URL format always 404s. It counts requests that succeed.
func bookServer(t *testing.T, bookID string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/files/"+bookID+"/"+bookID+".txt", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(sampleBook))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

// testDownloader mirrors DefaultURLFormats against srv.
func testDownloader(srv *httptest.Server) *Downloader {
	return NewDownloader([]string{
		srv.URL + "/files/%d/%d-0.txt",
		srv.URL + "/files/%d/%d.txt",
	}, time.Second)
}
