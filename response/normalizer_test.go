package response

import (
	"encoding/json"
	"errors"
	"testing"

	"jsonq/models"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var payload any
	require.NoError(t, sonic.UnmarshalString(s, &payload))
	return payload
}

func intPtr(i int) *int { return &i }

func TestNormalizeCollection(t *testing.T) {
	n := New()
	payload := decodeJSON(t, `[{"id":1},{"id":2}]`)

	assert.Equal(t, ShapeCollection, n.Detect(payload))

	list, err := n.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}, list.Records)
}

func TestNormalizeTypedSlice(t *testing.T) {
	list, err := New().Normalize([]user{{ID: 1}, {ID: 2}, {ID: 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, user{ID: 3}, list.Records[2])
}

func TestNormalizeEmptyCollection(t *testing.T) {
	list, err := New().Normalize([]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Records)
}

func TestNormalizePaginatedUsesItemsAsTotal(t *testing.T) {
	n := New()
	payload := decodeJSON(t, `{"records":[{"id":1}],"first":1,"prev":null,"next":2,"last":5,"pages":5,"items":42}`)

	assert.Equal(t, ShapePaginated, n.Detect(payload))

	list, err := n.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, 42, list.Total)
	assert.Equal(t, []any{map[string]any{"id": float64(1)}}, list.Records)
}

func TestNormalizeSpecEnvelopeByDefault(t *testing.T) {
	payload := map[string]any{
		"records": []any{map[string]any{"id": 1}},
		"first":   1, "prev": nil, "next": 2, "last": 5, "pages": 5, "items": 42,
	}

	n := New()
	assert.Equal(t, DefaultRecordsKey, n.RecordsKey())
	assert.Equal(t, ShapePaginated, n.Detect(payload))

	list, err := n.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, models.ListResponse[any]{
		Records: []any{map[string]any{"id": 1}},
		Total:   42,
	}, list)
}

func TestNormalizeJSONServerRecordsKey(t *testing.T) {
	payload := map[string]any{
		"data":  []any{map[string]any{"id": 1}},
		"first": 1, "prev": nil, "next": 2, "last": 5, "pages": 5, "items": 42,
	}

	_, err := New().Normalize(payload)
	assert.ErrorIs(t, err, ErrInvalidShape)

	n := New(WithRecordsKey(JSONServerRecordsKey))
	assert.Equal(t, "data", n.RecordsKey())
	list, err := n.Normalize(payload)
	require.NoError(t, err)
	assert.Equal(t, 42, list.Total)
	assert.Len(t, list.Records, 1)

	assert.Equal(t, DefaultRecordsKey, New(WithRecordsKey("")).RecordsKey())
}

func TestNormalizeInvalidShape(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{"empty object", map[string]any{}},
		{"null", nil},
		{"string", "users"},
		{"number", float64(3)},
		{"records not an array", decodeJSON(t, `{"records":{},"first":1,"last":1,"pages":1,"items":0}`)},
		{"missing items", decodeJSON(t, `{"records":[],"first":1,"last":1,"pages":1}`)},
		{"string pages", decodeJSON(t, `{"records":[],"first":1,"last":1,"pages":"1","items":0}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			assert.Equal(t, ShapeUnknown, n.Detect(tt.payload))

			_, err := n.Normalize(tt.payload)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidShape))
		})
	}
}

func TestIsPaginatedAcceptsNumericKinds(t *testing.T) {
	n := New()
	payload := map[string]any{
		"records": []any{},
		"first":   int64(1),
		"last":    uint64(1),
		"pages":   json.Number("1"),
		"items":   0,
	}
	assert.True(t, n.IsPaginated(payload))
	assert.False(t, n.IsCollection(payload))
}

func TestPaginatedEnvelope(t *testing.T) {
	n := New()
	payload := decodeJSON(t, `{"records":[{"id":7}],"first":1,"prev":3,"next":null,"last":5,"pages":5,"items":42}`)

	env, ok := n.Paginated(payload)
	require.True(t, ok)
	assert.Equal(t, 1, env.First)
	assert.Equal(t, intPtr(3), env.Prev)
	assert.Nil(t, env.Next)
	assert.Equal(t, 5, env.Last)
	assert.Equal(t, 5, env.Pages)
	assert.Equal(t, 42, env.Items)

	_, ok = n.Paginated([]any{})
	assert.False(t, ok)
}

func TestPaginationInfoFirstPage(t *testing.T) {
	info := PaginationInfo(models.PaginatedResponse[any]{
		First: 1, Prev: nil, Next: intPtr(2), Last: 5, Pages: 5, Items: 42,
	})
	assert.Equal(t, models.PaginationInfo{
		CurrentPage: 1,
		TotalPages:  5,
		TotalItems:  42,
		HasNext:     true,
		HasPrev:     false,
	}, info)
}

func TestPaginationInfoLastPage(t *testing.T) {
	info := PaginationInfo(models.PaginatedResponse[user]{
		First: 1, Prev: intPtr(3), Next: nil, Last: 5, Pages: 5, Items: 42,
	})
	assert.Equal(t, 4, info.CurrentPage)
	assert.True(t, info.HasPrev)
	assert.False(t, info.HasNext)
	assert.Equal(t, 5, info.TotalPages)
	assert.Equal(t, 42, info.TotalItems)
}

func TestDecodeTypedPaginated(t *testing.T) {
	payload := decodeJSON(t, `{"records":[{"id":1,"name":"Ann"},{"id":2,"name":"Bo"}],"first":1,"prev":1,"next":3,"last":4,"pages":4,"items":8}`)

	result, err := Decode[user](New(), payload)
	require.NoError(t, err)
	assert.Equal(t, ShapePaginated, result.Shape)
	assert.Equal(t, 8, result.List.Total)
	assert.Equal(t, []user{{1, "Ann"}, {2, "Bo"}}, result.List.Records)
	require.NotNil(t, result.Envelope)
	assert.Equal(t, result.List.Records, result.Envelope.Records)

	info, ok := result.Pagination()
	require.True(t, ok)
	assert.Equal(t, 2, info.CurrentPage)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestDecodeTypedCollection(t *testing.T) {
	payload := decodeJSON(t, `[{"id":5,"name":"Eve"}]`)

	result, err := Decode[user](New(), payload)
	require.NoError(t, err)
	assert.Equal(t, ShapeCollection, result.Shape)
	assert.Equal(t, models.ListResponse[user]{Records: []user{{5, "Eve"}}, Total: 1}, result.List)
	assert.Nil(t, result.Envelope)

	_, ok := result.Pagination()
	assert.False(t, ok)
}

func TestDecodeAnyKeepsRecords(t *testing.T) {
	payload := []any{"a", "b"}
	result, err := Decode[any](New(), payload)
	require.NoError(t, err)
	assert.Equal(t, payload, result.List.Records)
}

func TestDecodeInvalidShape(t *testing.T) {
	_, err := Decode[user](New(), map[string]any{"error": "boom"})
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestDecodeRecordTypeMismatch(t *testing.T) {
	_, err := Decode[user](New(), []any{map[string]any{"id": "not a number"}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidShape))
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "paginated", ShapePaginated.String())
	assert.Equal(t, "collection", ShapeCollection.String())
	assert.Equal(t, "unknown", ShapeUnknown.String())
}

func TestDecodeBaseEntity(t *testing.T) {
	payload := decodeJSON(t, `[{"id":1,"name":"Ann"},{"id":"b7"}]`)

	result, err := Decode[models.BaseEntity](New(), payload)
	require.NoError(t, err)
	assert.Equal(t, []models.BaseEntity{{ID: float64(1)}, {ID: "b7"}}, result.List.Records)
}
