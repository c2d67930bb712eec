package sad

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MarshalJSON emits the entries in insertion order as a compact JSON
// object. HTML characters are not escaped; the bytes must be identical
// across platforms because they are digested.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSONValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSONValue(&buf, m.vals[k]); err != nil {
			return nil, fmt.Errorf("sad: marshal value of %q: %w", k, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode appends a newline that must not reach the digested bytes.
	b := buf.Bytes()
	if len(b) > 0 && b[len(b)-1] == '\n' {
		buf.Truncate(len(b) - 1)
	}
	return nil
}

// UnmarshalJSON parses a JSON object preserving its key order. Nested
// objects become *Map, arrays become []any, and numbers are kept as
// json.Number so re-serialization reproduces the source digits.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("sad: JSON value is not an object")
	}
	parsed, err := decodeJSONObject(dec)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// FromJSON parses a JSON object into a Map, preserving key order.
func FromJSON(data []byte) (*Map, error) {
	m := New()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return m, nil
}

// decodeJSONObject consumes object members up to and including the
// closing brace. The opening brace has already been read.
func decodeJSONObject(dec *json.Decoder) (*Map, error) {
	m := New()
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return m, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("sad: object key is %T, not string", tok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
	}
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			var arr []any
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			// Consume the closing bracket.
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if arr == nil {
				arr = []any{}
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("sad: unexpected delimiter %q", t)
		}
	default:
		return tok, nil
	}
}
