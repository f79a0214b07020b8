package api

import (
	"encoding/json"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc/encoding"
)

// Content subtypes understood by the service. The message structs carry json
// tags only; the cbor encoder falls back to them for field names.
const (
	CodecJSON = "json"
	CodecCBOR = "cbor"
)

var registerCodecsOnce sync.Once

type jsonCodec struct{}

func (jsonCodec) Name() string {
	return CodecJSON
}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCborCodec() *cborCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("api: cbor encoder initialization failed: " + err.Error())
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("api: cbor decoder initialization failed: " + err.Error())
	}
	return &cborCodec{enc: enc, dec: dec}
}

func (c *cborCodec) Name() string {
	return CodecCBOR
}

func (c *cborCodec) Marshal(v interface{}) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c *cborCodec) Unmarshal(data []byte, v interface{}) error {
	return c.dec.Unmarshal(data, v)
}

// EnsureCodecs registers the json and cbor codecs with grpc. Both clients and
// servers must call it before the first RPC.
func EnsureCodecs() {
	registerCodecsOnce.Do(func() {
		encoding.RegisterCodec(jsonCodec{})
		encoding.RegisterCodec(newCborCodec())
	})
}

// IsKnownCodec reports whether name is a content subtype registered by EnsureCodecs.
func IsKnownCodec(name string) bool {
	return name == CodecJSON || name == CodecCBOR
}
