package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Corpus
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single document",
			input: "the cat sat\n",
			want:  Corpus{{"the", "cat", "sat"}},
		},
		{
			name:  "multiple documents with blank lines",
			input: "a b c\n\n  \nd e\n",
			want:  Corpus{{"a", "b", "c"}, {"d", "e"}},
		},
		{
			name:  "tabs and runs of spaces",
			input: "a\tb  c",
			want:  Corpus{{"a", "b", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte("All that glitters is not gold\nAll is well that ends well\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	if docs.TokenCount() != 12 {
		t.Errorf("TokenCount() = %d, want 12", docs.TokenCount())
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
