package lfx

import (
	"bytes"
	"encoding/json"
)

// Value is an upstream field kept as the raw JSON it arrived as, so a
// number, string, bool or anything else passes through unchanged.
// A nil Value means the field was absent or null.
type Value json.RawMessage

// StringValue wraps s as a JSON string Value.
func StringValue(s string) Value {
	b, _ := json.Marshal(s)
	return Value(b)
}

// IsAbsent reports whether the field was missing or null.
func (v Value) IsAbsent() bool {
	return len(v) == 0
}

// Text renders v for display: strings unquoted, other JSON verbatim,
// absent as an empty string.
func (v Value) Text() string {
	if v.IsAbsent() {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// String is Text with absent rendered as "None".
func (v Value) String() string {
	if v.IsAbsent() {
		return absentValue
	}
	return v.Text()
}

// Bool reports the value as a boolean when it is a JSON true or false.
func (v Value) Bool() (b bool, ok bool) {
	if v.IsAbsent() {
		return false, false
	}
	if err := json.Unmarshal(v, &b); err != nil {
		return false, false
	}
	return b, true
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsAbsent() {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = nil
		return nil
	}
	*v = append((*v)[0:0], data...)
	return nil
}

func (v Value) clone() Value {
	if v == nil {
		return nil
	}
	return append(Value(nil), v...)
}
