package formats

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// JSONDecoder decodes a single JSON document
type JSONDecoder struct{}

// Decode parses data as one JSON value
func (d *JSONDecoder) Decode(data []byte) (any, error) {
	var payload any
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return payload, nil
}
