package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a numeric field the backend may encode either as a JSON number
// or as a string (decimal columns come back as "120.50").
type Number float64

// UnmarshalJSON accepts 12, 12.5, "12.5", "" and null.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return n.Set(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("number: %w", err)
	}
	*n = Number(f)
	return nil
}

// Set parses a form or JSON string value. Blank means zero.
func (n *Number) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("number %q: %w", s, err)
	}
	*n = Number(f)
	return nil
}

// UnmarshalParam lets echo bind form and query values into a Number.
func (n *Number) UnmarshalParam(param string) error {
	return n.Set(param)
}

// String drops a trailing ".0" so whole quantities print as integers.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Fixed2 formats n with two decimals, the way amounts are shown and sent.
func (n Number) Fixed2() string {
	return strconv.FormatFloat(float64(n), 'f', 2, 64)
}
