package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadWordList reads one word per record. Extra columns (frequency counts and the like)
// are ignored, as are blank lines and lines starting with '#'.
func ReadWordList(r io.Reader) ([]string, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.Comment = '#'
	csvReader.TrimLeadingSpace = true
	csvReader.ReuseRecord = true

	var words []string
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		word := strings.TrimSpace(record[0])
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words, nil
}
