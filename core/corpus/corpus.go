// Package corpus defines the document model and vocabulary construction for
// co-occurrence training. Tokens are opaque strings: identity is exact-match
// and case-sensitive, and no normalization or further tokenization happens
// here — documents arrive pre-segmented.
package corpus

// Document is an ordered sequence of tokens. Order is significant: it defines
// positional adjacency for context windowing.
type Document []string

// Corpus is an ordered sequence of documents. Order across documents carries
// no meaning beyond deterministic traversal.
type Corpus []Document

// TokenCount returns the total number of token occurrences across all
// documents, counting repeats.
func (c Corpus) TokenCount() int {
	total := 0
	for _, doc := range c {
		total += len(doc)
	}
	return total
}
