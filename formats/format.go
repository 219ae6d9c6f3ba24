package formats

import (
	"errors"
	"strings"
)

// PayloadDecoder turns a raw list response body into a generic payload
// (maps, slices and scalars) that the response normalizer can inspect
type PayloadDecoder interface {
	// Decode parses the body and returns the decoded payload
	Decode(data []byte) (any, error)
}

// ErrUnsupportedFormat is returned when the requested format is not supported
var ErrUnsupportedFormat = errors.New("unsupported format")

// Names lists the formats accepted by GetDecoder
var Names = []string{"json", "jsoneachrow", "msgpack"}

// GetDecoder returns the appropriate decoder for the given format
func GetDecoder(format string) (PayloadDecoder, error) {
	switch format {
	case "json", "":
		return &JSONDecoder{}, nil
	case "jsoneachrow":
		return &JSONEachRowDecoder{}, nil
	case "msgpack":
		return &MsgpackDecoder{}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ForContentType picks a decoder from a Content-Type header, falling back to JSON
func ForContentType(contentType string) PayloadDecoder {
	mediaType, _, _ := strings.Cut(contentType, ";")
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "application/msgpack", "application/x-msgpack", "application/vnd.msgpack":
		return &MsgpackDecoder{}
	case "application/x-ndjson", "application/jsonl", "application/jsonlines":
		return &JSONEachRowDecoder{}
	default:
		return &JSONDecoder{}
	}
}
