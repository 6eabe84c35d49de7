package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IntID is a numeric record id (item_id, bill_id). The backend sends it as a
// JSON number from some endpoints and as a string from others.
type IntID int64

// UnmarshalJSON accepts 12, "12", "" and null.
func (id *IntID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return id.Set(s)
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = IntID(n)
	return nil
}

// Set parses s as a base-10 id. Blank means zero.
func (id *IntID) Set(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("id %q: %w", s, err)
	}
	*id = IntID(n)
	return nil
}

// UnmarshalParam lets echo bind path and form values into an IntID.
func (id *IntID) UnmarshalParam(param string) error {
	return id.Set(param)
}

func (id IntID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ID is an opaque record id (client ids). Numbers are kept in their JSON
// text form, so 7 and "7" name the same record.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}
