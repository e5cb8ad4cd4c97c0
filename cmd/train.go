package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adalundhe/covec/core/config"
	"github.com/adalundhe/covec/core/corpus"
	"github.com/adalundhe/covec/core/embedding"
	"github.com/adalundhe/covec/core/store"
)

var trainFlags struct {
	corpusPath string
	outPath    string
	configPath string
	window     int
	dimensions int
	iterations int
	seed       int64
	parallel   bool
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train embeddings from a tokenized corpus file",
	Long: `Train reads a whitespace-tokenized corpus (one document per line),
builds the windowed co-occurrence matrix, reduces it with truncated SVD, and
stores the resulting embeddings in a SQLite database.`,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().StringVar(&trainFlags.corpusPath, "corpus", "", "path to the tokenized corpus file (required)")
	trainCmd.Flags().StringVar(&trainFlags.outPath, "out", "embeddings.db", "path to the output embedding database")
	trainCmd.Flags().StringVar(&trainFlags.configPath, "config", "", "path to a YAML config file")
	trainCmd.Flags().IntVar(&trainFlags.window, "window", 0, "context window radius (overrides config)")
	trainCmd.Flags().IntVar(&trainFlags.dimensions, "dim", 0, "embedding dimensionality (overrides config)")
	trainCmd.Flags().IntVar(&trainFlags.iterations, "iterations", 0, "SVD refinement passes (overrides config)")
	trainCmd.Flags().Int64Var(&trainFlags.seed, "seed", 0, "SVD random seed (overrides config)")
	trainCmd.Flags().BoolVar(&trainFlags.parallel, "parallel", false, "accumulate co-occurrences across CPUs")
	_ = trainCmd.MarkFlagRequired("corpus")

	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if trainFlags.configPath != "" {
		loaded, err := config.Load(trainFlags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	applyTrainOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	docs, err := corpus.LoadFile(trainFlags.corpusPath)
	if err != nil {
		return err
	}
	logger.Info("corpus loaded",
		"path", trainFlags.corpusPath,
		"documents", len(docs),
		"tokens", docs.TokenCount(),
	)

	emb, err := embedding.Train(docs, embedding.Options{
		WindowSize: cfg.WindowSize,
		Dimensions: cfg.Dimensions,
		Iterations: cfg.Iterations,
		Seed:       cfg.Seed,
		Parallel:   cfg.Parallel,
	})
	if err != nil {
		return fmt.Errorf("train embeddings: %w", err)
	}
	logger.Info("embeddings trained",
		"vocabulary", emb.Len(),
		"dimensions", emb.Dim(),
		"window", cfg.WindowSize,
	)

	db, err := store.Open(trainFlags.outPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.Save(db, emb); err != nil {
		return err
	}
	logger.Info("embeddings saved", "path", trainFlags.outPath)
	return nil
}

func applyTrainOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("window") {
		cfg.WindowSize = trainFlags.window
	}
	if cmd.Flags().Changed("dim") {
		cfg.Dimensions = trainFlags.dimensions
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = trainFlags.iterations
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = trainFlags.seed
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = trainFlags.parallel
	}
}
