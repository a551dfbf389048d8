package parser

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// DefaultDelimiter separates fields in broker exports.
const DefaultDelimiter = ','

// Tokenize splits one delimited line into fields. Fields may be wrapped in
// double quotes; the delimiter only separates fields outside quotes.
func Tokenize(line string, delimiter rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return fields, nil
}
