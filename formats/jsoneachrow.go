package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// JSONEachRowDecoder decodes JSON Lines, one record per line.
// The result is always a bare collection.
type JSONEachRowDecoder struct{}

// Decode parses JSON Lines format (one JSON value per line)
func (d *JSONEachRowDecoder) Decode(data []byte) (any, error) {
	records := []any{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Skip empty lines
		if strings.TrimSpace(line) == "" {
			continue
		}

		var record any
		if err := sonic.UnmarshalString(line, &record); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", lineNum, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return records, nil
}
