package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decimal is a decimal literal kept verbatim as a string.
// It decodes from a JSON string, a JSON number or null, so the backend may send
// "9.99" or 9.99 for the same field. Empty means absent.
type Decimal string

// UnmarshalJSON implements json.Unmarshaler
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode decimal string: %w", err)
		}
		*d = Decimal(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode decimal number %s: %w", string(data), err)
	}
	*d = Decimal(n.String())
	return nil
}

// String returns the literal as received
func (d Decimal) String() string { return string(d) }

// IsZero reports whether the value is absent
func (d Decimal) IsZero() bool { return d == "" }
