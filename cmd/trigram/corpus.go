package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/CTAG07/Trigram/pkg/corpus"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect the local corpus cache",
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached books",
	Args:  cobra.NoArgs,
	RunE:  runCorpusList,
}

var corpusRmCmd = &cobra.Command{
	Use:   "rm BOOK_ID",
	Short: "Remove a book from the cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runCorpusRm,
}

func init() {
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusRmCmd)
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	db, store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()

	infos, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "The corpus cache is empty.")
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSIZE\tFETCHED")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			info.BookID, info.Title, humanize.Bytes(uint64(info.Size)), humanize.Time(info.FetchedAt))
	}
	return w.Flush()
}

func runCorpusRm(cmd *cobra.Command, args []string) error {
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

	if err = store.Remove(cmd.Context(), id); err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			return fmt.Errorf("book %d is not cached", id)
		}
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed book %d\n", id)
	return err
}
