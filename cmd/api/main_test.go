package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDictionaryWarnsOnBuiltinList(t *testing.T) {
	var buf bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = previous })

	words, err := loadDictionary("")
	require.NoError(t, err)
	assert.Positive(t, words.Size())
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "DICTIONARY_PATH")
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	_, err := loadDictionary("does-not-exist.txt")
	assert.Error(t, err)
}
