package response

import (
	"fmt"

	"jsonq/models"

	"github.com/bytedance/sonic"
)

// Result is a normalized payload with typed records
type Result[T any] struct {
	Shape Shape
	List  models.ListResponse[T]
	// Envelope is set only for ShapePaginated
	Envelope *models.PaginatedResponse[T]
}

// Pagination returns the navigation state of a paginated result
func (r Result[T]) Pagination() (models.PaginationInfo, bool) {
	if r.Envelope == nil {
		return models.PaginationInfo{}, false
	}
	return PaginationInfo(*r.Envelope), true
}

// Decode normalizes payload and converts its records to T
func Decode[T any](n *Normalizer, payload any) (Result[T], error) {
	switch n.Detect(payload) {
	case ShapePaginated:
		env, _ := n.Paginated(payload)
		records, err := convertRecords[T](env.Records)
		if err != nil {
			return Result[T]{}, err
		}
		typed := models.PaginatedResponse[T]{
			Records: records,
			First:   env.First,
			Prev:    env.Prev,
			Next:    env.Next,
			Last:    env.Last,
			Pages:   env.Pages,
			Items:   env.Items,
		}
		return Result[T]{
			Shape:    ShapePaginated,
			List:     models.ListResponse[T]{Records: records, Total: env.Items},
			Envelope: &typed,
		}, nil

	case ShapeCollection:
		records, err := convertRecords[T](toSlice(payload))
		if err != nil {
			return Result[T]{}, err
		}
		return Result[T]{
			Shape: ShapeCollection,
			List:  models.ListResponse[T]{Records: records, Total: len(records)},
		}, nil
	}

	return Result[T]{}, invalidShape(payload)
}

func convertRecords[T any](records []any) ([]T, error) {
	if typed, ok := any(records).([]T); ok {
		return typed, nil
	}

	raw, err := sonic.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	out := make([]T, 0, len(records))
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return out, nil
}
