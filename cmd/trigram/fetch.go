package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/CTAG07/Trigram/pkg/corpus"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var fetchOut string

var fetchCmd = &cobra.Command{
	Use:   "fetch BOOK_ID",
	Short: "Download a Project Gutenberg book into the corpus cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "also write the cleaned text to this file")
}

func parseBookID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", arg)
	}
	return id, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	id, err := parseBookID(args[0])
	if err != nil {
		return err
	}

	db, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()

	fetcher := corpus.NewFetcher(store, newDownloader(cfg))
	fetcher.SetLogger(logger)
	book, err := fetcher.Fetch(cmd.Context(), id)
	if err != nil {
		return err
	}

	if fetchOut != "" {
		if err = corpus.SaveFile(fetchOut, book.Body); err != nil {
			return err
		}
		logger.Info("Saved book text", slog.String("path", fetchOut))
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
		book.BookID, book.Title, humanize.Bytes(uint64(len(book.Body))), book.Source)
	return err
}
