// Package codec provides wire encoding helpers for the beacon's scale types.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/spacemeshos/go-scale"
)

// Encodable is an interface that must be implemented by a struct to be encoded.
type Encodable = scale.Encodable

// Decodable is an interface that must be implemented by a struct to be decoded.
type Decodable = scale.Decodable

// EncodeTo encodes value to a writer stream.
func EncodeTo(w io.Writer, value Encodable) (int, error) {
	return value.EncodeScale(scale.NewEncoder(w))
}

// DecodeFrom decodes a value using data from a reader stream.
func DecodeFrom(r io.Reader, value Decodable) (int, error) {
	return value.DecodeScale(scale.NewDecoder(r))
}

var encoderPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(64)
		return b
	},
}

// Encode value to a byte buffer.
func Encode(value Encodable) ([]byte, error) {
	b := encoderPool.Get().(*bytes.Buffer)
	defer func() {
		b.Reset()
		encoderPool.Put(b)
	}()
	_, err := EncodeTo(b, value)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	buf := make([]byte, len(b.Bytes()))
	copy(buf, b.Bytes())
	return buf, nil
}

// MustEncode encodes a value or panics. Encoding an in-memory value can fail
// only on a programming error.
func MustEncode(value Encodable) []byte {
	buf, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return buf
}

// Decode value from a byte buffer. Buffers with trailing data are rejected.
func Decode(buf []byte, value Decodable) error {
	n, err := DecodeFrom(bytes.NewBuffer(buf), value)
	if err != nil {
		return fmt.Errorf("deserialize: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("deserialize: %d bytes of %d left in buffer", len(buf)-n, len(buf))
	}
	return nil
}

// MustDecode decodes a value or panics.
func MustDecode(buf []byte, value Decodable) {
	if err := Decode(buf, value); err != nil {
		panic(err)
	}
}
