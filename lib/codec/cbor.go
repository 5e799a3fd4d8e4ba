// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// MaxArrayElements bounds every CBOR array a decoder accepts. A year
// schedule is 8760 hourly values and a library document lists every
// entity of a kind in one array, so the limit sits well above the
// library default of 131072.
const MaxArrayElements = 1 << 22

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2). The same document always produces the same
// bytes, so cache blobs written on different runs compare equal.
var encMode cbor.EncMode

// decMode is the CBOR decoder used for cache entries and .cbor
// document files. Unknown fields are ignored so an older binary can
// read a document written by a newer one. Duplicate map keys are an
// error: a record carrying "$id" twice has no single identity.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Documents only use string keys. Decoding into any would
		// otherwise yield map[interface{}]interface{}, which
		// encoding/json cannot marshal when a record is re-emitted
		// as JSON by "archetype convert".
		DefaultMapType:   reflect.TypeOf(map[string]any(nil)),
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: MaxArrayElements,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding. Struct
// fields are keyed by their json tags, so a document record encodes
// with the same "$id" and "$ref" keys in both formats.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Callers use it through
// [NewEncoder] so every stream shares the deterministic encoding.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder. Callers use it through
// [NewDecoder] so every stream shares the document decoding limits.
type Decoder = cbor.Decoder

// NewEncoder returns a deterministic CBOR encoder writing to w. The
// docfile package wraps w in a compressor before calling this.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder reading from r with the same
// options as [Unmarshal].
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. "archetype inspect --diagnose" prints it
// for .cbor document files.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
