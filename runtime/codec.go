package runtime

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Codec encodes the tasks and results exchanged with the workers.
type Codec interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
	Name() string
}

// NewCodec returns the Codec for s
func NewCodec(s Serializer) (Codec, error) {
	switch s {
	case SerializerCBOR:
		return cborCodec{}, nil
	case SerializerJSON:
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported serializer %s", s)
	}
}

type cborCodec struct{}

func (cborCodec) Marshal(v interface{}) ([]byte, error)      { return cbor.Marshal(v) }
func (cborCodec) Unmarshal(data []byte, v interface{}) error { return cbor.Unmarshal(data, v) }
func (cborCodec) Name() string                               { return SerializerCBOR.String() }

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                               { return SerializerJSON.String() }
