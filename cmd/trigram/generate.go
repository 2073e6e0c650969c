package main

import (
	"fmt"
	"strings"

	"github.com/CTAG07/Trigram/pkg/trigram"
	"github.com/spf13/cobra"
)

var generateFlags struct {
	source      sourceFlags
	maxLength   int
	count       int
	seed        string
	temperature float64
	topK        int
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Train on a book or file and print generated text",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateFlags.source.register(generateCmd)
	generateCmd.Flags().IntVar(&generateFlags.maxLength, "max-length", 0, "maximum words per generation (default from config)")
	generateCmd.Flags().IntVar(&generateFlags.count, "count", 0, "number of generations to print (default from config)")
	generateCmd.Flags().StringVar(&generateFlags.seed, "seed", "", "start from the last two words of this text")
	generateCmd.Flags().Float64Var(&generateFlags.temperature, "temperature", 0, "sampling temperature; 0 or less always picks the most frequent word (default from config)")
	generateCmd.Flags().IntVar(&generateFlags.topK, "top-k", 0, "only sample from the k most frequent followers (default from config)")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	src, err := loadTrainingText(cmd.Context(), cmd, &generateFlags.source)
	if err != nil {
		return err
	}
	model, err := trainModel(src)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	maxLength := cfg.Model.MaxLength
	if flags.Changed("max-length") {
		maxLength = generateFlags.maxLength
	}
	count := cfg.Model.Generations
	if flags.Changed("count") {
		count = generateFlags.count
	}
	temperature := cfg.Model.Temperature
	if flags.Changed("temperature") {
		temperature = generateFlags.temperature
	}
	topK := cfg.Model.TopK
	if flags.Changed("top-k") {
		topK = generateFlags.topK
	}

	opts := []trigram.GenerateOption{
		trigram.WithMaxLength(maxLength),
		trigram.WithTemperature(temperature),
		trigram.WithTopK(topK),
	}

	out := cmd.OutOrStdout()
	rule := strings.Repeat("-", 50)
	for i := 1; i <= count; i++ {
		text := model.GenerateFromString(generateFlags.seed, opts...)
		if _, err = fmt.Fprintf(out, "Generated Text %d:\n%s\n%s\n", i, text, rule); err != nil {
			return err
		}
	}
	return nil
}
