package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Filters are query parameters. Keys are emitted in sorted order. A slice
// value becomes indexed "key[0]", "key[1]" pairs and a map value becomes
// "key[sub]" pairs, recursively. Nil values are skipped and booleans render as 1 or 0.
type Filters map[string]any

// Encode renders the filters as a URL-encoded query string without the
// leading question mark.
func (f Filters) Encode() string {
	if len(f) == 0 {
		return ""
	}
	var pairs []string
	for _, k := range sortedKeys(f) {
		pairs = appendPair(pairs, k, f[k])
	}
	return strings.Join(pairs, "&")
}

// Clone returns a shallow copy that can be extended without touching f.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// With returns a copy of f with key set to value.
func (f Filters) With(key string, value any) Filters {
	out := f.Clone()
	out[key] = value
	return out
}

func appendPair(pairs []string, key string, value any) []string {
	switch v := value.(type) {
	case nil:
		return pairs
	case string:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(v))
	case bool:
		if v {
			return append(pairs, url.QueryEscape(key)+"=1")
		}
		return append(pairs, url.QueryEscape(key)+"=0")
	case Value:
		return appendPair(pairs, key, v.Interface())
	case time.Time:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(v.Format(time.RFC3339)))
	case fmt.Stringer:
		return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(v.String()))
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return pairs
		}
		return appendPair(pairs, key, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		for i := 0; i < rv.Len(); i++ {
			pairs = appendPair(pairs, key+"["+strconv.Itoa(i)+"]", rv.Index(i).Interface())
		}
		return pairs
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		subs := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			subs = append(subs, k.String())
		}
		sort.Strings(subs)
		for _, sub := range subs {
			elem := rv.MapIndex(reflect.ValueOf(sub).Convert(rv.Type().Key()))
			pairs = appendPair(pairs, key+"["+sub+"]", elem.Interface())
		}
		return pairs
	}
	return append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(fmt.Sprint(value)))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
