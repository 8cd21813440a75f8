package utils

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	tests := map[string]string{
		"étoile":        "ETOILE",
		"  Maïs ":       "MAIS",
		"garçon":        "GARCON",
		"porte-monnaie": "PORTEMONNAIE",
		"l'arbre":       "LARBRE",
		"ze?u":          "ZEU",
		"123":           "",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeWord(in), in)
	}
}

func TestNormalizeIsIdentityOnNormalized(t *testing.T) {
	for _, w := range []string{"A", "ZEBU", "ANTICONSTITUTIONNELLEMENT"} {
		assert.Equal(t, w, NormalizeWord(w))
		assert.Equal(t, w, NormalizeWord(NormalizeWord(w)))
	}
}

func TestNormalizePatternKeepsWildcard(t *testing.T) {
	assert.Equal(t, "ZE?U", NormalizePattern("zé?u"))
	assert.Equal(t, "??", NormalizePattern(" ? ? "))
}

func TestGenerateRoomCode(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		code := GenerateRoomCode(rng, 4)
		require.Len(t, code, 4)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(RoomCodeAlphabet, c), "unexpected %q", c)
		}
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "0")
	}
}

func TestGenerateToken(t *testing.T) {
	a, b := GenerateToken(), GenerateToken()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToUpper(a), a)
	assert.NotContains(t, a, "-")
	assert.Len(t, GenerateID(), 36)
}

func TestReadWordList(t *testing.T) {
	input := "# french words\nzèbre,12\n\n  chat\nabricot,4,extra\n"
	words, err := ReadWordList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"zèbre", "chat", "abricot"}, words)

	_, err = ReadWordList(strings.NewReader("\"unterminated\n"))
	assert.Error(t, err)
}
