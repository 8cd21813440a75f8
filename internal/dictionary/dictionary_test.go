package dictionary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	d := New([]string{"zèbre", "Chat", "maïs", "  "})

	testCases := []struct {
		word string
		want bool
	}{
		{"ZEBRE", true},
		{"zèbre", true},
		{"chat", true},
		{"MAIS", true},
		{"chats", false},
		{"", false},
		{"!!", false},
	}
	for _, tc := range testCases {
		t.Run(tc.word, func(t *testing.T) {
			assert.Equal(t, tc.want, d.Exists(tc.word))
		})
	}
	assert.Equal(t, 3, d.Size())
}

func TestResolveWildcard(t *testing.T) {
	d := New([]string{"zébu", "zébus", "zoo"})

	word, ok := d.Resolve("ZE?U")
	require.True(t, ok)
	assert.Equal(t, "ZEBU", word)

	word, ok = d.Resolve("Z??U?")
	require.True(t, ok)
	assert.Equal(t, "ZEBUS", word)

	word, ok = d.Resolve("?O?")
	require.True(t, ok)
	assert.Equal(t, "ZOO", word)

	_, ok = d.Resolve("ZA?")
	assert.False(t, ok)

	_, ok = d.Resolve("????????")
	assert.False(t, ok)
}

func TestResolveExactWordIsIdentity(t *testing.T) {
	d := New([]string{"lune"})
	word, ok := d.Resolve("LUNE")
	require.True(t, ok)
	assert.Equal(t, "LUNE", word)
}

func TestLoad(t *testing.T) {
	d, err := Load(strings.NewReader("# comment\nétoile,12\n\nmer\n"))
	require.NoError(t, err)
	assert.True(t, d.Exists("ETOILE"))
	assert.True(t, d.Exists("mer"))
	assert.Equal(t, 2, d.Size())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("soleil\nlune\n"), 0o600))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, d.Exists("SOLEIL"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Greater(t, d.Size(), 100)
	assert.True(t, d.Exists("ZEBU"))
	assert.True(t, d.Exists("ETOILE"))
}
