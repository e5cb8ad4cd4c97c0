// Package cooccur builds symmetric word-by-word co-occurrence count matrices
// from a tokenized corpus using a sliding context window.
//
// For a window radius w, two token occurrences co-occur when they sit at
// distinct positions within the same document and at most w positions apart.
// Windows never cross document boundaries, and positions near document edges
// simply see fewer neighbors. Counts land at (index(center), index(neighbor))
// for both orientations of every pair, so the matrix is symmetric by
// construction. A diagonal entry is non-zero only when the same token occurs
// at two distinct positions within one window of itself.
package cooccur

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/adalundhe/covec/core/corpus"
)

// DefaultWindowSize is the context window radius used when a caller has no
// reason to choose otherwise.
const DefaultWindowSize = 4

var (
	// ErrInvalidWindow is returned for a non-positive window radius.
	ErrInvalidWindow = errors.New("cooccur: window size must be positive")

	// ErrUnknownToken is returned when a corpus token is missing from a
	// caller-supplied vocabulary. It cannot occur when the vocabulary is
	// derived from the same corpus.
	ErrUnknownToken = errors.New("cooccur: token not in vocabulary")
)

// Build derives the vocabulary from the corpus and accumulates the VxV
// co-occurrence matrix for the given window radius. Entries are integer
// counts stored as float64 for downstream linear algebra. An empty corpus
// yields an empty vocabulary and a 0x0 matrix.
func Build(c corpus.Corpus, windowSize int) (*mat.Dense, *corpus.Vocabulary, error) {
	vocab := corpus.NewVocabulary(c)
	m, err := BuildWithVocabulary(c, vocab, windowSize)
	if err != nil {
		return nil, nil, err
	}
	return m, vocab, nil
}

// BuildWithVocabulary accumulates counts against an externally supplied
// vocabulary. Any corpus token absent from the vocabulary is a contract
// violation and fails with ErrUnknownToken before a matrix is returned.
func BuildWithVocabulary(c corpus.Corpus, vocab *corpus.Vocabulary, windowSize int) (*mat.Dense, error) {
	if windowSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowSize)
	}

	m := newCountMatrix(vocab.Len())
	for _, doc := range c {
		ids, err := tokenIDs(vocab, doc)
		if err != nil {
			return nil, err
		}
		accumulate(m, ids, windowSize)
	}

	return m, nil
}

// accumulate tallies one document's contributions. Only backward pairs
// (j < i) are visited; each is recorded in both orientations, which is
// equivalent to scanning the full window around every center.
func accumulate(m *mat.Dense, ids []int, windowSize int) {
	for i, row := range ids {
		for j := i - 1; j >= 0 && j >= i-windowSize; j-- {
			col := ids[j]
			m.Set(row, col, m.At(row, col)+1)
			m.Set(col, row, m.At(col, row)+1)
		}
	}
}

// tokenIDs maps a document to vocabulary indices.
func tokenIDs(vocab *corpus.Vocabulary, doc corpus.Document) ([]int, error) {
	ids := make([]int, len(doc))
	for i, tok := range doc {
		id, ok := vocab.Index(tok)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownToken, tok)
		}
		ids[i] = id
	}
	return ids, nil
}

// BuildParallel is Build with accumulation fanned out across
// runtime.GOMAXPROCS workers. Per-document contributions are disjoint and
// commutative, so the result equals the sequential Build exactly; per-row
// locks serialize increments that land in the same row.
func BuildParallel(c corpus.Corpus, windowSize int) (*mat.Dense, *corpus.Vocabulary, error) {
	if windowSize <= 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, windowSize)
	}

	vocab := corpus.NewVocabulary(c)
	m := newCountMatrix(vocab.Len())

	locks := newRowLocks(vocab.Len())
	docs := make(chan corpus.Document)

	var g errgroup.Group
	for range runtime.GOMAXPROCS(0) {
		g.Go(func() error {
			for doc := range docs {
				ids, err := tokenIDs(vocab, doc)
				if err != nil {
					return err
				}
				accumulateLocked(m, locks, ids, windowSize)
			}
			return nil
		})
	}

	for _, doc := range c {
		docs <- doc
	}
	close(docs)

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return m, vocab, nil
}

func accumulateLocked(m *mat.Dense, locks rowLocks, ids []int, windowSize int) {
	for i, row := range ids {
		for j := i - 1; j >= 0 && j >= i-windowSize; j-- {
			col := ids[j]

			locks[row].Lock()
			m.Set(row, col, m.At(row, col)+1)
			locks[row].Unlock()

			locks[col].Lock()
			m.Set(col, row, m.At(col, row)+1)
			locks[col].Unlock()
		}
	}
}

// newCountMatrix allocates a VxV zero matrix. gonum refuses zero-sized
// dimensions, so the empty-vocabulary case returns the Dense zero value,
// which reports Dims() == (0, 0).
func newCountMatrix(v int) *mat.Dense {
	if v == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(v, v, nil)
}
