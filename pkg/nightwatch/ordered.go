package nightwatch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes the modules object, keeping key order.
func (m *Modules) UnmarshalJSON(data []byte) error {
	var out Modules
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var mod Module
		if err := json.Unmarshal(raw, &mod); err != nil {
			return fmt.Errorf("module %q: %w", key, err)
		}
		for i := range out {
			if out[i].Name == key {
				out[i].Module = mod
				return nil
			}
		}
		out = append(out, NamedModule{Name: key, Module: mod})
		return nil
	})
	if err != nil {
		return err
	}
	*m = out
	return nil
}

// MarshalJSON encodes modules as an object in their stored order.
func (m Modules) MarshalJSON() ([]byte, error) {
	return encodeObject(len(m), func(i int) (string, any) {
		return m[i].Name, m[i].Module
	})
}

// UnmarshalJSON decodes the completed object, keeping key order.
func (c *CompletedCases) UnmarshalJSON(data []byte) error {
	var out CompletedCases
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var tc CompletedCase
		if err := json.Unmarshal(raw, &tc); err != nil {
			return fmt.Errorf("test case %q: %w", key, err)
		}
		for i := range out {
			if out[i].Name == key {
				out[i].Case = tc
				return nil
			}
		}
		out = append(out, NamedCase{Name: key, Case: tc})
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// MarshalJSON encodes completed cases as an object in their stored order.
func (c CompletedCases) MarshalJSON() ([]byte, error) {
	return encodeObject(len(c), func(i int) (string, any) {
		return c[i].Name, c[i].Case
	})
}

// decodeObject walks a JSON object token by token and hands each member to fn
// in document order. A JSON null is treated as an empty object.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func encodeObject(n int, member func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, val := member(i)
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
