// Package response turns the two list shapes a json-server can return into
// one canonical models.ListResponse.
//
// Without paging parameters the server answers with a bare JSON array. With
// _page it wraps the records in an envelope carrying first/prev/next/last,
// pages and items. Shapes are tried in a fixed order, paginated first.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"jsonq/models"
)

// ErrInvalidShape is returned when a payload matches neither known shape
var ErrInvalidShape = errors.New("invalid list response shape")

// DefaultRecordsKey is the envelope field holding the records of a page
const DefaultRecordsKey = "records"

// JSONServerRecordsKey is where json-server v1 puts the records of a page
const JSONServerRecordsKey = "data"

// Shape identifies the server contract a payload satisfies
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapePaginated
	ShapeCollection
)

func (s Shape) String() string {
	switch s {
	case ShapePaginated:
		return "paginated"
	case ShapeCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// shapes is the detection order. The envelope must stay ahead of the bare
// array so a future envelope that is also array-like is never misread.
var shapes = []struct {
	shape Shape
	match func(n *Normalizer, payload any) bool
}{
	{ShapePaginated, (*Normalizer).IsPaginated},
	{ShapeCollection, (*Normalizer).IsCollection},
}

var envelopeNumbers = []string{"first", "last", "pages", "items"}

// Normalizer inspects decoded payloads. It holds no mutable state and is
// safe for concurrent use.
type Normalizer struct {
	recordsKey string
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithRecordsKey changes the envelope field holding the records, e.g.
// JSONServerRecordsKey for json-server v1. An empty key keeps the default.
func WithRecordsKey(key string) Option {
	return func(n *Normalizer) {
		if key != "" {
			n.recordsKey = key
		}
	}
}

// New creates a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{recordsKey: DefaultRecordsKey}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// RecordsKey returns the envelope field holding the records
func (n *Normalizer) RecordsKey() string {
	return n.recordsKey
}

// IsPaginated reports whether payload is a paginated envelope: an object whose
// records field is an array and whose first, last, pages and items are numbers.
func (n *Normalizer) IsPaginated(payload any) bool {
	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return false
	}
	if !isArray(obj[n.recordsKey]) {
		return false
	}
	for _, key := range envelopeNumbers {
		if _, ok := asNumber(obj[key]); !ok {
			return false
		}
	}
	return true
}

// IsCollection reports whether payload is a bare array of any element type
func (n *Normalizer) IsCollection(payload any) bool {
	return isArray(payload)
}

// Detect returns the first shape payload matches
func (n *Normalizer) Detect(payload any) Shape {
	for _, candidate := range shapes {
		if candidate.match(n, payload) {
			return candidate.shape
		}
	}
	return ShapeUnknown
}

// Normalize converts payload into the canonical list shape. For a paginated
// envelope the total is its items count, not the number of records on the page.
func (n *Normalizer) Normalize(payload any) (models.ListResponse[any], error) {
	switch n.Detect(payload) {
	case ShapePaginated:
		env, _ := n.Paginated(payload)
		return models.ListResponse[any]{Records: env.Records, Total: env.Items}, nil
	case ShapeCollection:
		records := toSlice(payload)
		return models.ListResponse[any]{Records: records, Total: len(records)}, nil
	}
	return models.ListResponse[any]{}, invalidShape(payload)
}

// Paginated decodes payload as a paginated envelope. ok is false when the
// payload is not one, so PaginationInfo can only be reached with a valid envelope.
func (n *Normalizer) Paginated(payload any) (env models.PaginatedResponse[any], ok bool) {
	if !n.IsPaginated(payload) {
		return env, false
	}
	obj := payload.(map[string]any)
	return models.PaginatedResponse[any]{
		Records: toSlice(obj[n.recordsKey]),
		First:   toInt(obj["first"]),
		Prev:    optionalInt(obj["prev"]),
		Next:    optionalInt(obj["next"]),
		Last:    toInt(obj["last"]),
		Pages:   toInt(obj["pages"]),
		Items:   toInt(obj["items"]),
	}, true
}

// PaginationInfo derives navigation state from an envelope. The current page
// is inferred as prev+1, or 1 when there is no previous page.
func PaginationInfo[T any](env models.PaginatedResponse[T]) models.PaginationInfo {
	current := 1
	if env.Prev != nil {
		current = *env.Prev + 1
	}
	return models.PaginationInfo{
		CurrentPage: current,
		TotalPages:  env.Pages,
		TotalItems:  env.Items,
		HasNext:     env.Next != nil,
		HasPrev:     env.Prev != nil,
	}
}

func invalidShape(payload any) error {
	if payload == nil {
		return fmt.Errorf("%w: got null", ErrInvalidShape)
	}
	if _, ok := payload.(map[string]any); ok {
		return fmt.Errorf("%w: object is not a paginated envelope", ErrInvalidShape)
	}
	return fmt.Errorf("%w: got %T", ErrInvalidShape, payload)
}

func isArray(v any) bool {
	if v == nil {
		return false
	}
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func toSlice(v any) []any {
	if records, ok := v.([]any); ok {
		return records
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// asNumber accepts every numeric kind a JSON or MessagePack decoder may produce
func asNumber(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func toInt(v any) int {
	f, _ := asNumber(v)
	return int(f)
}

func optionalInt(v any) *int {
	f, ok := asNumber(v)
	if !ok {
		return nil
	}
	i := int(f)
	return &i
}
