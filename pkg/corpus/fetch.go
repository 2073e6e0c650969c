package corpus

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Fetcher returns book texts from the cache, downloading and caching them on a miss.
type Fetcher struct {
	store      *Store
	downloader *Downloader
	logger     *slog.Logger
}

// NewFetcher combines a cache and a downloader. store may be nil, in which
// case every Fetch downloads.
func NewFetcher(store *Store, downloader *Downloader) *Fetcher {
	return &Fetcher{
		store:      store,
		downloader: downloader,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Fetcher. By default, all logs are discarded.
func (f *Fetcher) SetLogger(logger *slog.Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// Fetch returns the boilerplate-free text of bookID.
func (f *Fetcher) Fetch(ctx context.Context, bookID int) (Text, error) {
	if f.store != nil {
		text, err := f.store.Get(ctx, bookID)
		if err == nil {
			f.logger.DebugContext(ctx, "Book served from cache", slog.Int("book_id", bookID))
			return text, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Text{}, err
		}
	}

	raw, source, err := f.downloader.Download(ctx, bookID)
	if err != nil {
		return Text{}, err
	}

	text := Text{
		BookID: bookID,
		Title:  ExtractTitle(raw),
		Source: source,
		Body:   StripBoilerplate(raw),
	}
	if f.store != nil {
		if err = f.store.Put(ctx, text); err != nil {
			return Text{}, err
		}
		// Re-read so FetchedAt carries the stored resolution.
		return f.store.Get(ctx, bookID)
	}
	return text, nil
}
