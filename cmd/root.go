package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

var rootCmd = &cobra.Command{
	Use:   "covec",
	Short: "Covec - count-based word embeddings",
	Long:  `Covec builds distributional word embeddings from a tokenized corpus via windowed co-occurrence counts and truncated SVD.`,
}

func Execute() error {
	return rootCmd.Execute()
}
