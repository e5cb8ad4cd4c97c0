// Package store persists trained embeddings to SQLite so a training run and
// a later lookup can live in different processes. One row per token, vector
// bytes as little-endian float64, plus a small key/value metadata table.
package store

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"gonum.org/v1/gonum/mat"

	"github.com/adalundhe/covec/core/corpus"
	"github.com/adalundhe/covec/core/embedding"
)

// ErrNotFound is returned by Load when the database holds no embedding.
var ErrNotFound = errors.New("store: no embedding stored")

const schema = `
CREATE TABLE IF NOT EXISTS embedding_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS embedding_vectors (
	idx    INTEGER PRIMARY KEY,
	token  TEXT NOT NULL UNIQUE,
	vector BLOB NOT NULL
);
`

// Open opens (creating if necessary) an embedding database at path.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open embedding db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// Save writes e to db, replacing any previously stored embedding.
func Save(db *sql.DB, e *embedding.Embedding) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM embedding_vectors"); err != nil {
		return fmt.Errorf("clear vectors: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM embedding_meta"); err != nil {
		return fmt.Errorf("clear metadata: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO embedding_meta (key, value) VALUES ('dim', ?), ('tokens', ?)",
		strconv.Itoa(e.Dim()), strconv.Itoa(e.Len()),
	); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO embedding_vectors (idx, token, vector) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range e.Len() {
		if _, err := stmt.Exec(i, e.Token(i), encodeVector(e.VectorAt(i))); err != nil {
			return fmt.Errorf("insert vector %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load reads the stored embedding back from db.
func Load(db *sql.DB) (*embedding.Embedding, error) {
	var dimStr, countStr string
	err := db.QueryRow("SELECT value FROM embedding_meta WHERE key = 'dim'").Scan(&dimStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	if err := db.QueryRow("SELECT value FROM embedding_meta WHERE key = 'tokens'").Scan(&countStr); err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	dim, err := strconv.Atoi(dimStr)
	if err != nil {
		return nil, fmt.Errorf("parse dim: %w", err)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return nil, fmt.Errorf("parse token count: %w", err)
	}

	if count == 0 {
		vocab, err := corpus.NewVocabularyFromTokens(nil)
		if err != nil {
			return nil, err
		}
		return embedding.New(vocab, &mat.Dense{})
	}
	if dim <= 0 {
		return nil, fmt.Errorf("store: stored dimension %d is invalid", dim)
	}

	rows, err := db.Query("SELECT idx, token, vector FROM embedding_vectors ORDER BY idx")
	if err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	defer rows.Close()

	tokens := make([]string, 0, count)
	vectors := mat.NewDense(count, dim, nil)
	for rows.Next() {
		var (
			idx   int
			token string
			blob  []byte
		)
		if err := rows.Scan(&idx, &token, &blob); err != nil {
			return nil, fmt.Errorf("scan vector row: %w", err)
		}
		if idx != len(tokens) {
			return nil, fmt.Errorf("store: vector indices not contiguous at %d", idx)
		}
		vec, err := decodeVector(blob, dim)
		if err != nil {
			return nil, fmt.Errorf("vector for %q: %w", token, err)
		}
		tokens = append(tokens, token)
		vectors.SetRow(idx, vec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	if len(tokens) != count {
		return nil, fmt.Errorf("store: expected %d vectors, found %d", count, len(tokens))
	}

	vocab, err := corpus.NewVocabularyFromTokens(tokens)
	if err != nil {
		return nil, err
	}
	return embedding.New(vocab, vectors)
}

func encodeVector(vec []float64) []byte {
	buf := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decodeVector(blob []byte, dim int) ([]float64, error) {
	if len(blob) != 8*dim {
		return nil, fmt.Errorf("store: blob is %d bytes, want %d", len(blob), 8*dim)
	}
	vec := make([]float64, dim)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[8*i:]))
	}
	return vec, nil
}
