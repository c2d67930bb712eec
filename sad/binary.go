package sad

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// cborEnc uses Core Deterministic Encoding (RFC 8949 §4.2) so the same
// logical value always produces identical bytes. Map ordering is not
// affected: Map writes its own definite-length map and the encoder only
// sees one key or value at a time.
var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("sad: CBOR encoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR emits a definite-length CBOR map with entries in
// insertion order.
func (m *Map) MarshalCBOR() ([]byte, error) {
	var buf bytes.Buffer
	writeCBORMapHead(&buf, len(m.keys))
	for _, k := range m.keys {
		kb, err := cborEnc.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		vb, err := cborEnc.Marshal(normalizeValue(m.vals[k]))
		if err != nil {
			return nil, fmt.Errorf("sad: marshal value of %q: %w", k, err)
		}
		buf.Write(vb)
	}
	return buf.Bytes(), nil
}

// writeCBORMapHead writes a major-type-5 head with the shortest form
// for n, per deterministic encoding.
func writeCBORMapHead(buf *bytes.Buffer, n int) {
	const major = 0xa0
	switch {
	case n < 24:
		buf.WriteByte(major | byte(n))
	case n <= 0xff:
		buf.WriteByte(0xb8)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(0xb9)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		buf.Write(b[:])
	default:
		buf.WriteByte(0xba)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		buf.Write(b[:])
	}
}

// EncodeMsgpack emits the entries in insertion order as a MessagePack
// map. Implements msgpack.CustomEncoder.
//
// Integers use the smallest representation regardless of their Go type:
// the bytes are digested, so a document parsed from JSON (int64 values)
// and the same document built in memory (int values) must serialize
// identically.
func (m *Map) EncodeMsgpack(enc *msgpack.Encoder) error {
	enc.UseCompactInts(true)
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	for _, k := range m.keys {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := enc.Encode(normalizeValue(m.vals[k])); err != nil {
			return fmt.Errorf("sad: encode value of %q: %w", k, err)
		}
	}
	return nil
}

// normalizeValue rewrites json.Number values (left behind by JSON
// parsing) into native numerics so binary kinds encode numbers as
// numbers, not strings. Nested Maps encode themselves.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
