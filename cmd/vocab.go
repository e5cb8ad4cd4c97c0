package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adalundhe/covec/core/corpus"
)

var vocabFlags struct {
	corpusPath string
	list       bool
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect the vocabulary of a corpus file",
	RunE:  runVocab,
}

func init() {
	vocabCmd.Flags().StringVar(&vocabFlags.corpusPath, "corpus", "", "path to the tokenized corpus file (required)")
	vocabCmd.Flags().BoolVar(&vocabFlags.list, "list", false, "print every token, one per line")
	_ = vocabCmd.MarkFlagRequired("corpus")

	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, args []string) error {
	docs, err := corpus.LoadFile(vocabFlags.corpusPath)
	if err != nil {
		return err
	}

	vocab := corpus.NewVocabulary(docs)
	fmt.Fprintf(cmd.OutOrStdout(), "documents: %d\ntokens: %d\ndistinct: %d\n",
		len(docs), docs.TokenCount(), vocab.Len())

	if vocabFlags.list {
		for _, tok := range vocab.Tokens() {
			fmt.Fprintln(cmd.OutOrStdout(), tok)
		}
	}
	return nil
}
