package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultDownloadTimeout bounds a single download attempt.
const DefaultDownloadTimeout = 10 * time.Second

// DefaultURLFormats are the Project Gutenberg plain-text locations tried, in
// order, for a book. Each format takes the book id twice.
var DefaultURLFormats = []string{
	"https://www.gutenberg.org/files/%d/%d-0.txt",
	"https://www.gutenberg.org/files/%d/%d.txt",
}

// Downloader fetches plain-text books from Project Gutenberg or a mirror.
type Downloader struct {
	client     *http.Client
	urlFormats []string
	logger     *slog.Logger
}

// NewDownloader returns a Downloader trying urlFormats in order, each
// attempt bounded by timeout. Empty urlFormats fall back to
// DefaultURLFormats and a non-positive timeout to DefaultDownloadTimeout.
func NewDownloader(urlFormats []string, timeout time.Duration) *Downloader {
	if len(urlFormats) == 0 {
		urlFormats = DefaultURLFormats
	}
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	return &Downloader{
		client:     &http.Client{Timeout: timeout},
		urlFormats: urlFormats,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Downloader. By default, all logs are discarded.
func (d *Downloader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		d.logger = logger
	}
}

// Download retrieves the raw text of a book, boilerplate included. It returns
// the text and the URL it came from. Every configured URL is tried before
// giving up; the returned error wraps each attempt's failure.
func (d *Downloader) Download(ctx context.Context, bookID int) (string, string, error) {
	var errs []error
	for _, format := range d.urlFormats {
		url := fmt.Sprintf(format, bookID, bookID)
		text, err := d.get(ctx, url)
		if err == nil {
			d.logger.InfoContext(ctx, "Book downloaded",
				slog.Int("book_id", bookID),
				slog.String("url", url),
				slog.Int("bytes", len(text)),
			)
			return text, url, nil
		}
		d.logger.WarnContext(ctx, "Download attempt failed",
			slog.Int("book_id", bookID),
			slog.String("url", url),
			slog.Any("error", err),
		)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", "", fmt.Errorf("failed to download book %d: %w", bookID, errors.Join(errs...))
}

func (d *Downloader) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read body from %s: %w", url, err)
	}
	return string(body), nil
}
