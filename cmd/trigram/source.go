package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/CTAG07/Trigram/pkg/corpus"
	"github.com/CTAG07/Trigram/pkg/trigram"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// sourceFlags selects the training text and threshold for a command.
type sourceFlags struct {
	bookID int
	file   string
	unk    int
	prune  int
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.bookID, "book", 0, "Project Gutenberg book id (default from config)")
	cmd.Flags().StringVar(&s.file, "file", "", "train on a local .txt or .pdf file instead of downloading")
	cmd.Flags().IntVar(&s.unk, "unk", 0, "unknown-word threshold (default from config)")
	cmd.Flags().IntVar(&s.prune, "prune", 0, "after training, drop transitions seen this many times or fewer")
}

// trainingText is the text a model will be trained on, and how.
type trainingText struct {
	Label            string
	Text             string
	UnknownThreshold int
	PruneBelow       int
}

// openStore opens the corpus cache database and prepares its statements.
func openStore(config *Config) (*sql.DB, *corpus.Store, error) {
	if err := os.MkdirAll(config.Server.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("could not create data dir: %w", err)
	}
	db, err := initDB(config.Server.CorpusDatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open corpus database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(logger)
	logger.Debug("Corpus cache opened",
		slog.String("path", config.Server.CorpusDatabasePath),
		slog.String("driver", sqliteDriver),
	)
	return db, store, nil
}

func newDownloader(config *Config) *corpus.Downloader {
	d := corpus.NewDownloader(config.Corpus.URLFormats, time.Duration(config.Corpus.DownloadTimeoutSec)*time.Second)
	d.SetLogger(logger)
	return d
}

// loadTrainingText resolves the text to train on. A local file wins over a
// book id. When a book cannot be fetched, the configured fallback file is used
// with the fallback threshold, unless --unk was given explicitly.
func loadTrainingText(ctx context.Context, cmd *cobra.Command, flags *sourceFlags) (trainingText, error) {
	threshold := cfg.Model.UnknownThreshold
	unkSet := cmd.Flags().Changed("unk")
	if unkSet {
		threshold = flags.unk
	}

	if flags.file != "" {
		text, err := corpus.ReadFile(flags.file)
		if err != nil {
			return trainingText{}, err
		}
		return trainingText{Label: flags.file, Text: text, UnknownThreshold: threshold, PruneBelow: flags.prune}, nil
	}

	bookID := cfg.Corpus.BookID
	if cmd.Flags().Changed("book") {
		bookID = flags.bookID
	}

	db, store, err := openStore(cfg)
	if err != nil {
		return trainingText{}, err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()

	fetcher := corpus.NewFetcher(store, newDownloader(cfg))
	fetcher.SetLogger(logger)

	book, fetchErr := fetcher.Fetch(ctx, bookID)
	if fetchErr == nil {
		label := book.Title
		if label == "" {
			label = fmt.Sprintf("book %d", bookID)
		}
		return trainingText{Label: label, Text: book.Body, UnknownThreshold: threshold, PruneBelow: flags.prune}, nil
	}

	logger.WarnContext(ctx, "Could not fetch book, falling back to example corpus",
		slog.Int("book_id", bookID),
		slog.String("fallback_path", cfg.Corpus.FallbackPath),
		slog.Any("error", fetchErr),
	)
	text, err := corpus.ReadFile(cfg.Corpus.FallbackPath)
	if err != nil {
		return trainingText{}, errors.Join(fetchErr, fmt.Errorf("fallback corpus unavailable: %w", err))
	}
	if !unkSet {
		threshold = cfg.Corpus.FallbackUnknownThreshold
	}
	return trainingText{Label: cfg.Corpus.FallbackPath, Text: text, UnknownThreshold: threshold, PruneBelow: flags.prune}, nil
}

// trainModel builds a model from src.
func trainModel(src trainingText) (*trigram.Model, error) {
	model, err := trigram.NewModel(
		trigram.WithUnknownThreshold(src.UnknownThreshold),
		trigram.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Training model",
		slog.String("source", src.Label),
		slog.String("size", humanize.Bytes(uint64(len(src.Text)))),
		slog.Int("unk_threshold", src.UnknownThreshold),
	)
	model.Train(src.Text)
	if src.PruneBelow > 0 {
		model.Prune(src.PruneBelow)
	}
	return model, nil
}
