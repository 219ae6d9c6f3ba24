package formats

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-msgpack/codec"
)

var stringMapType = reflect.TypeOf(map[string]any(nil))

// MsgpackDecoder decodes a MessagePack body into string keyed maps
type MsgpackDecoder struct{}

// NewMsgpackHandle returns the handle used for list payloads. Maps decode as
// map[string]any and raw bytes as strings, matching what a JSON decoder yields.
func NewMsgpackHandle() *codec.MsgpackHandle {
	handle := &codec.MsgpackHandle{RawToString: true}
	handle.MapType = stringMapType
	return handle
}

// Decode parses MessagePack format data
func (d *MsgpackDecoder) Decode(data []byte) (any, error) {
	var payload any

	decoder := codec.NewDecoderBytes(data, NewMsgpackHandle())

	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid MessagePack data: %w", err)
	}

	return payload, nil
}
