package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ============================================================================
// ORDERED AMOUNTS
// Category→amount mappings used by the AI flows. JSON objects lose key order
// with a plain map, but prompt text must be reproducible, so this type keeps
// the keys in document order.
// ============================================================================

type AmountEntry struct {
	Key   string
	Value float64
}

// OrderedAmounts is a category→amount mapping that preserves insertion order.
// It marshals to and from a plain JSON object.
type OrderedAmounts struct {
	entries []AmountEntry
}

func NewOrderedAmounts(entries ...AmountEntry) OrderedAmounts {
	return OrderedAmounts{entries: entries}
}

// Set appends the key or overwrites it in place, keeping its original position.
func (o *OrderedAmounts) Set(key string, value float64) {
	for i := range o.entries {
		if o.entries[i].Key == key {
			o.entries[i].Value = value
			return
		}
	}
	o.entries = append(o.entries, AmountEntry{Key: key, Value: value})
}

func (o OrderedAmounts) Get(key string) (float64, bool) {
	for _, e := range o.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

func (o OrderedAmounts) Entries() []AmountEntry {
	out := make([]AmountEntry, len(o.entries))
	copy(out, o.entries)
	return out
}

func (o OrderedAmounts) Len() int {
	return len(o.entries)
}

// Sum returns the total of all values.
func (o OrderedAmounts) Sum() float64 {
	var total float64
	for _, e := range o.entries {
		total += e.Value
	}
	return total
}

func (o OrderedAmounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so document order survives.
// Values must be numeric.
func (o *OrderedAmounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	o.entries = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("value for %q is not a number", key)
		}
		value, err := num.Float64()
		if err != nil {
			return fmt.Errorf("value for %q is not a number: %w", key, err)
		}

		o.entries = append(o.entries, AmountEntry{Key: key, Value: value})
	}

	// consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}
