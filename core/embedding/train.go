package embedding

import (
	"errors"
	"fmt"

	"github.com/adalundhe/covec/core/cooccur"
	"github.com/adalundhe/covec/core/corpus"
	"github.com/adalundhe/covec/core/reduce"
)

// ErrEmptyCorpus is returned by Train when the corpus contains no tokens.
var ErrEmptyCorpus = errors.New("embedding: corpus has no tokens")

// Options configures a training run. Zero values fall back to the package
// defaults noted on each field.
type Options struct {
	// WindowSize is the co-occurrence context radius.
	// Default: cooccur.DefaultWindowSize.
	WindowSize int

	// Dimensions is the embedding dimensionality k, 0 < k <= vocabulary
	// size. Required.
	Dimensions int

	// Iterations bounds the SVD solver's refinement passes.
	// Default: reduce.DefaultIterations.
	Iterations int

	// Seed drives the solver's randomized initialization.
	// Default: reduce.DefaultSeed. Note that 0 means the default, not a
	// zero seed.
	Seed int64

	// Parallel fans co-occurrence accumulation out across CPUs. The
	// result is identical either way.
	Parallel bool
}

// Train runs the full pipeline: vocabulary, windowed co-occurrence counts,
// truncated-SVD reduction. The returned embedding has one Dimensions-wide
// row per distinct corpus token, in vocabulary order.
func Train(c corpus.Corpus, opts Options) (*Embedding, error) {
	if opts.WindowSize == 0 {
		opts.WindowSize = cooccur.DefaultWindowSize
	}
	if opts.Iterations == 0 {
		opts.Iterations = reduce.DefaultIterations
	}
	if opts.Seed == 0 {
		opts.Seed = reduce.DefaultSeed
	}

	build := cooccur.Build
	if opts.Parallel {
		build = cooccur.BuildParallel
	}

	counts, vocab, err := build(c, opts.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("accumulate co-occurrences: %w", err)
	}
	if vocab.Len() == 0 {
		return nil, ErrEmptyCorpus
	}

	reducer := &reduce.TruncatedSVD{
		Iterations: opts.Iterations,
		Oversample: reduce.DefaultOversample,
		Seed:       opts.Seed,
	}
	vectors, err := reducer.Reduce(counts, opts.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("reduce co-occurrence matrix: %w", err)
	}

	return New(vocab, vectors)
}
