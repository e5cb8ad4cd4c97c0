package corpus

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsortedTokens is returned by NewVocabularyFromTokens when the supplied
// token list is not strictly ascending.
var ErrUnsortedTokens = errors.New("corpus: tokens must be strictly ascending and free of duplicates")

// Vocabulary is an immutable bijection between the distinct tokens of a
// corpus and dense integer indices in [0, Len()). Indices follow the
// lexicographic (byte-wise) order of the tokens, so two builds over the same
// corpus always agree, regardless of map iteration order.
type Vocabulary struct {
	tokens []string
	index  map[string]int
}

// NewVocabulary scans the corpus and builds its vocabulary. An empty corpus,
// or one containing only empty documents, yields an empty vocabulary; neither
// is an error.
func NewVocabulary(c Corpus) *Vocabulary {
	seen := make(map[string]struct{})
	for _, doc := range c {
		for _, tok := range doc {
			seen[tok] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	index := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		index[tok] = i
	}

	return &Vocabulary{tokens: tokens, index: index}
}

// NewVocabularyFromTokens rebuilds a vocabulary from an already-ordered token
// list, as produced by Tokens or read back from storage. The list must be
// strictly ascending; anything else would silently break index identity.
func NewVocabularyFromTokens(tokens []string) (*Vocabulary, error) {
	index := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if i > 0 && tokens[i-1] >= tok {
			return nil, fmt.Errorf("%w: %q followed by %q", ErrUnsortedTokens, tokens[i-1], tok)
		}
		index[tok] = i
	}

	owned := make([]string, len(tokens))
	copy(owned, tokens)

	return &Vocabulary{tokens: owned, index: index}, nil
}

// Len returns the number of distinct tokens.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// Tokens returns the distinct tokens in ascending order. The returned slice
// is a copy; callers may retain or mutate it freely.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Index returns the dense index of token, and whether the token exists.
func (v *Vocabulary) Index(token string) (int, bool) {
	i, ok := v.index[token]
	return i, ok
}

// Token returns the token at index i. Panics if i is out of range, matching
// slice semantics.
func (v *Vocabulary) Token(i int) string {
	return v.tokens[i]
}

// Contains reports whether token appears in the vocabulary.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.index[token]
	return ok
}
