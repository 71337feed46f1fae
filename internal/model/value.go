package model

import (
	"encoding/json"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind tags which variant a Value holds
type Kind int

const (
	KindString Kind = iota // Text that did not parse as an integer
	KindInt                // Base-10 integer
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// Value is a cleaned field value: either an integer or a string
type Value struct {
	kind Kind
	i    int64
	s    string
}

// Int returns an integer Value
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// String returns a string Value
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Kind reports which variant v holds
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer and true if v is an integer
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsString returns the string and true if v is a string
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Raw renders v back to delimited-text form
func (v Value) Raw() string {
	if v.kind == KindInt {
		return strconv.FormatInt(v.i, 10)
	}
	return v.s
}

// Equal reports whether both values hold the same variant and payload
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindInt {
		return v.i == o.i
	}
	return v.s == o.s
}

func (v Value) String() string { return v.Raw() }

// MarshalJSON emits a JSON number for integers and a JSON string otherwise
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindInt {
		return []byte(strconv.FormatInt(v.i, 10)), nil
	}
	return json.Marshal(v.s)
}

// MarshalYAML emits a native YAML int or string
func (v Value) MarshalYAML() (interface{}, error) {
	if v.kind == KindInt {
		return v.i, nil
	}
	return v.s, nil
}

// UnmarshalYAML accepts an int scalar or any other scalar as a string
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		i, err := strconv.ParseInt(node.Value, 10, 64)
		if err == nil {
			*v = Int(i)
			return nil
		}
	}
	*v = String(node.Value)
	return nil
}
