package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adalundhe/covec/core/store"
)

var neighborsFlags struct {
	dbPath string
	count  int
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors <token>",
	Short: "Show the nearest tokens to a query token",
	Long:  `Neighbors loads a trained embedding database and prints the tokens most cosine-similar to the query token.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runNeighbors,
}

func init() {
	neighborsCmd.Flags().StringVar(&neighborsFlags.dbPath, "db", "embeddings.db", "path to the embedding database")
	neighborsCmd.Flags().IntVar(&neighborsFlags.count, "n", 10, "number of neighbors to show")

	rootCmd.AddCommand(neighborsCmd)
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	db, err := store.Open(neighborsFlags.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	emb, err := store.Load(db)
	if err != nil {
		return err
	}

	neighbors, err := emb.Nearest(args[0], neighborsFlags.count)
	if err != nil {
		return err
	}

	for _, n := range neighbors {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6f\n", n.Token, n.Similarity)
	}
	return nil
}
