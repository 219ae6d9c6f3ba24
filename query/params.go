package query

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// Params is an ordered set of query parameters.
// Keys are unique: setting an existing key replaces its value and keeps its position.
type Params struct {
	keys   []string
	values map[string]any
}

func (p *Params) set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = detach(value)
}

// detach copies slice values so later writes by the caller, or by the holder
// of a Build result, cannot reach the stored parameters
func detach(value any) any {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return value
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)
	return out.Interface()
}

func (p *Params) del(key string) {
	if _, exists := p.values[key]; !exists {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

func (p Params) clone() Params {
	out := Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]any, len(p.values)),
	}
	copy(out.keys, p.keys)
	for k, v := range p.values {
		out.values[k] = detach(v)
	}
	return out
}

// Get returns the value stored under key
func (p Params) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the parameter names in insertion order
func (p Params) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Len returns the number of distinct keys
func (p Params) Len() int {
	return len(p.keys)
}

// Values flattens the set into url.Values. Nil values are dropped and
// sequences become repeated entries.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p.keys))
	for _, key := range p.keys {
		for _, s := range stringsOf(p.values[key]) {
			values.Add(key, s)
		}
	}
	return values
}

// Encode serializes the set as a form-encoded query string.
// Unlike url.Values.Encode, entries keep insertion order.
func (p Params) Encode() string {
	var sb strings.Builder
	for _, key := range p.keys {
		escapedKey := url.QueryEscape(key)
		for _, s := range stringsOf(p.values[key]) {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(escapedKey)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(s))
		}
	}
	return sb.String()
}

// stringsOf expands a parameter value into its query entries
func stringsOf(value any) []string {
	if isNil(value) {
		return nil
	}

	rv := reflect.ValueOf(value)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if isNil(elem) {
				continue
			}
			out = append(out, scalarString(elem))
		}
		return out
	}

	return []string{scalarString(value)}
}

func scalarString(value any) string {
	s, err := cast.ToStringE(value)
	if err != nil {
		// named types such as models.Order are not known to cast
		return fmt.Sprint(value)
	}
	return s
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
