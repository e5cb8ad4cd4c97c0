// Package embedding ties the pipeline together: vocabulary construction,
// windowed co-occurrence counting, and truncated-SVD reduction into dense
// per-token vectors, plus cosine-similarity neighbor lookup over the result.
package embedding

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"

	"github.com/adalundhe/covec/core/corpus"
)

var (
	// ErrTokenNotFound is returned when a queried token is not in the
	// embedding's vocabulary.
	ErrTokenNotFound = errors.New("embedding: token not found")

	// ErrShapeMismatch is returned when the vector matrix row count does
	// not match the vocabulary size.
	ErrShapeMismatch = errors.New("embedding: vector rows must match vocabulary size")
)

// Embedding holds one dense vector per vocabulary token. Row i of the vector
// matrix belongs to the token at vocabulary index i. Immutable once built.
type Embedding struct {
	vocab   *corpus.Vocabulary
	vectors *mat.Dense
	dim     int
}

// Neighbor is a token scored by cosine similarity to a query vector.
type Neighbor struct {
	Token      string
	Similarity float64
}

// New wraps a vocabulary and its vector matrix into an Embedding. The matrix
// must have exactly one row per vocabulary token.
func New(vocab *corpus.Vocabulary, vectors *mat.Dense) (*Embedding, error) {
	rows, cols := vectors.Dims()
	if rows != vocab.Len() {
		return nil, fmt.Errorf("%w: %d rows, %d tokens", ErrShapeMismatch, rows, vocab.Len())
	}
	return &Embedding{vocab: vocab, vectors: vectors, dim: cols}, nil
}

// Dim returns the dimensionality of each vector.
func (e *Embedding) Dim() int {
	return e.dim
}

// Len returns the number of tokens.
func (e *Embedding) Len() int {
	return e.vocab.Len()
}

// Vocabulary returns the underlying vocabulary.
func (e *Embedding) Vocabulary() *corpus.Vocabulary {
	return e.vocab
}

// Token returns the token at vocabulary index i.
func (e *Embedding) Token(i int) string {
	return e.vocab.Token(i)
}

// VectorAt returns a copy of the vector at vocabulary index i.
func (e *Embedding) VectorAt(i int) []float64 {
	out := make([]float64, e.dim)
	copy(out, e.vectors.RawRowView(i))
	return out
}

// Vector returns a copy of the vector for token, and whether the token
// exists.
func (e *Embedding) Vector(token string) ([]float64, bool) {
	i, ok := e.vocab.Index(token)
	if !ok {
		return nil, false
	}
	return e.VectorAt(i), true
}

// Nearest returns up to n tokens most cosine-similar to token, descending by
// similarity, excluding the query token itself. Tokens whose vectors have
// zero norm are skipped.
func (e *Embedding) Nearest(token string, n int) ([]Neighbor, error) {
	qi, ok := e.vocab.Index(token)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTokenNotFound, token)
	}
	if n <= 0 {
		return nil, nil
	}

	query := e.vectors.RawRowView(qi)
	queryNorm := math.Sqrt(vek.Dot(query, query))
	if queryNorm == 0 {
		return nil, nil
	}

	neighbors := make([]Neighbor, 0, e.Len()-1)
	for i := range e.Len() {
		if i == qi {
			continue
		}
		row := e.vectors.RawRowView(i)
		norm := math.Sqrt(vek.Dot(row, row))
		if norm == 0 {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			Token:      e.vocab.Token(i),
			Similarity: vek.Dot(query, row) / (queryNorm * norm),
		})
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Similarity != neighbors[b].Similarity {
			return neighbors[a].Similarity > neighbors[b].Similarity
		}
		return neighbors[a].Token < neighbors[b].Token
	})

	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors, nil
}
