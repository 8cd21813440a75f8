// Package dictionary answers word-validity questions for submitted words, including
// patterns where '?' stands for any letter.
package dictionary

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/guerrinflorian/lexiflood-backend/internal/utils"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

//go:embed words.txt
var defaultWords string

// Dictionary is immutable after construction and safe for concurrent use.
type Dictionary struct {
	words    map[string]struct{}
	prefixes map[string]struct{}
}

// New builds a dictionary from raw words. Words are normalized; empty results are skipped.
func New(words []string) *Dictionary {
	d := &Dictionary{
		words:    make(map[string]struct{}, len(words)),
		prefixes: make(map[string]struct{}, len(words)*2),
	}
	for _, w := range words {
		normalized := utils.NormalizeWord(w)
		if normalized == "" {
			continue
		}
		d.words[normalized] = struct{}{}
		for i := 1; i <= len(normalized); i++ {
			d.prefixes[normalized[:i]] = struct{}{}
		}
	}
	return d
}

// Load reads a word list (one word per line) from r.
func Load(r io.Reader) (*Dictionary, error) {
	words, err := utils.ReadWordList(r)
	if err != nil {
		return nil, err
	}
	return New(words), nil
}

func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary %s: %w", path, err)
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return d, nil
}

// Default returns the dictionary built from the embedded word list.
func Default() *Dictionary {
	d, err := Load(strings.NewReader(defaultWords))
	if err != nil {
		// the embedded list is plain text; a read error here means the binary is broken
		panic(fmt.Sprintf("dictionary: embedded word list: %v", err))
	}
	return d
}

func (d *Dictionary) Size() int {
	return len(d.words)
}

// Exists reports whether word, after normalization, is a dictionary word or a pattern
// with at least one in-dictionary completion.
func (d *Dictionary) Exists(word string) bool {
	_, ok := d.Resolve(word)
	return ok
}

// Resolve returns a concrete dictionary word matching pattern. Each '?' matches one letter.
// The search walks letters left to right and abandons any prefix no word starts with, so
// its depth is bounded by the pattern length.
func (d *Dictionary) Resolve(pattern string) (string, bool) {
	normalized := utils.NormalizePattern(pattern)
	if normalized == "" {
		return "", false
	}
	if !strings.ContainsRune(normalized, utils.Wildcard) {
		_, ok := d.words[normalized]
		return normalized, ok
	}

	return d.complete(normalized, make([]byte, 0, len(normalized)))
}

func (d *Dictionary) complete(pattern string, buf []byte) (string, bool) {
	pos := len(buf)
	if pos == len(pattern) {
		_, ok := d.words[string(buf)]
		return string(buf), ok
	}

	candidates := pattern[pos : pos+1]
	if pattern[pos] == utils.Wildcard {
		candidates = alphabet
	}
	for i := 0; i < len(candidates); i++ {
		next := append(buf, candidates[i])
		if _, ok := d.prefixes[string(next)]; !ok {
			continue
		}
		if word, ok := d.complete(pattern, next); ok {
			return word, true
		}
	}
	return "", false
}
