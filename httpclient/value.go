package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Kind is the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a decoded JSON document. Numbers keep their literal text.
// The zero Value is JSON null.
type Value struct {
	v any // nil, bool, json.Number, string, []any or map[string]any
}

// Null returns the JSON null value.
func Null() Value { return Value{} }

// ParseValue decodes exactly one JSON document.
func ParseValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("unexpected data after JSON document")
	}
	return Value{v: x}, nil
}

// ValueOf converts any JSON-serializable Go value.
func ValueOf(x any) (Value, error) {
	if v, ok := x.(Value); ok {
		return v, nil
	}
	b, err := json.Marshal(x)
	if err != nil {
		return Value{}, err
	}
	return ParseValue(b)
}

// StringValue wraps s as a JSON string.
func StringValue(s string) Value { return Value{v: s} }

func (v Value) Kind() Kind {
	switch v.v.(type) {
	case bool:
		return KindBool
	case json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	}
	return KindNull
}

func (v Value) IsNull() bool { return v.v == nil }

func (v Value) AsBool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

func (v Value) AsString() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

func (v Value) AsNumber() (json.Number, bool) {
	n, ok := v.v.(json.Number)
	return n, ok
}

func (v Value) AsInt() (int64, bool) {
	n, ok := v.v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}

func (v Value) AsFloat() (float64, bool) {
	n, ok := v.v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

func (v Value) AsArray() ([]Value, bool) {
	a, ok := v.v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(a))
	for i, x := range a {
		out[i] = Value{v: x}
	}
	return out, true
}

func (v Value) AsObject() (map[string]Value, bool) {
	m, ok := v.v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]Value, len(m))
	for k, x := range m {
		out[k] = Value{v: x}
	}
	return out, true
}

// Get returns the member named key, or null when v is not an object or
// has no such member.
func (v Value) Get(key string) Value {
	if m, ok := v.v.(map[string]any); ok {
		return Value{v: m[key]}
	}
	return Value{}
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	m, ok := v.v.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[key]
	return ok
}

// Index returns element i, or null when out of range or v is not an array.
func (v Value) Index(i int) Value {
	if a, ok := v.v.([]any); ok && i >= 0 && i < len(a) {
		return Value{v: a[i]}
	}
	return Value{}
}

// Len is the number of array elements or object members, zero otherwise.
func (v Value) Len() int {
	switch t := v.v.(type) {
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	}
	return 0
}

// Keys returns the object member names in sorted order.
func (v Value) Keys() []string {
	m, ok := v.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Members returns the items of a collection document: the JSON-LD
// "hydra:member" array, a plain "member" array, or v itself when it is
// an array.
func (v Value) Members() []Value {
	for _, key := range []string{"hydra:member", "member"} {
		if items, ok := v.Get(key).AsArray(); ok {
			return items
		}
	}
	items, _ := v.AsArray()
	return items
}

// TotalItems returns the collection total when the document carries one.
func (v Value) TotalItems() (int64, bool) {
	for _, key := range []string{"hydra:totalItems", "totalItems"} {
		if n, ok := v.Get(key).AsInt(); ok {
			return n, true
		}
	}
	return 0, false
}

// Interface returns the underlying Go value.
func (v Value) Interface() any { return v.v }

func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.v) }

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String returns the compact JSON text.
func (v Value) String() string {
	b, err := json.Marshal(v.v)
	if err != nil {
		return fmt.Sprintf("%v", v.v)
	}
	return string(b)
}
