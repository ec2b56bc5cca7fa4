package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// WearMap is a wear-label-to-value mapping that preserves the key order of
// the catalog file. The order matters: when a requested wear is absent, the
// record's first listed wear is substituted.
type WearMap struct {
	order  []string
	values map[string]string
}

// UnmarshalJSON decodes a JSON object while recording key order.
func (m *WearMap) UnmarshalJSON(data []byte) error {
	m.order = nil
	m.values = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("wear map: expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("wear map: non-string key %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("wear map: value for %q: %w", key, err)
		}

		if _, seen := m.values[key]; !seen {
			m.order = append(m.order, key)
		}
		m.values[key] = value
	}

	// Consume the closing brace.
	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the map preserving key order.
func (m WearMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value for a wear label.
func (m WearMap) Get(wear string) (string, bool) {
	v, ok := m.values[wear]
	return v, ok
}

// First returns the first wear label and value in file order.
func (m WearMap) First() (wear, value string, ok bool) {
	if len(m.order) == 0 {
		return "", "", false
	}
	wear = m.order[0]
	return wear, m.values[wear], true
}

// Len returns the number of wear labels in the map.
func (m WearMap) Len() int {
	return len(m.order)
}
