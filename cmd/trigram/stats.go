package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsSource sourceFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Train on a book or file and print model statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsSource.register(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	src, err := loadTrainingText(cmd.Context(), cmd, &statsSource)
	if err != nil {
		return err
	}
	model, err := trainModel(src)
	if err != nil {
		return err
	}
	stats := model.Stats()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Source:\t%s\n", src.Label)
	_, _ = fmt.Fprintf(w, "Text size:\t%s\n", humanize.Bytes(uint64(len(src.Text))))
	_, _ = fmt.Fprintf(w, "Unknown threshold:\t%d\n", src.UnknownThreshold)
	_, _ = fmt.Fprintf(w, "Contexts:\t%s\n", humanize.Comma(int64(stats.Contexts)))
	_, _ = fmt.Fprintf(w, "Chains:\t%s\n", humanize.Comma(int64(stats.TotalChains)))
	_, _ = fmt.Fprintf(w, "Trigrams counted:\t%s\n", humanize.Comma(int64(stats.TotalFrequency)))
	_, _ = fmt.Fprintf(w, "Starting words:\t%s\n", humanize.Comma(int64(stats.StartingTokens)))
	_, _ = fmt.Fprintf(w, "Vocabulary:\t%s\n", humanize.Comma(int64(stats.VocabSize)))
	_, _ = fmt.Fprintf(w, "Unknown substitutions:\t%s\n", humanize.Comma(int64(stats.UnknownCount)))
	return w.Flush()
}
