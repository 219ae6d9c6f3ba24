package models

// Order is the sort direction applied to every field listed in a sort
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Operator is a comparison suffix appended to a field name, e.g. age_gte
type Operator string

const (
	OpNotEqual     Operator = "ne"
	OpLessThan     Operator = "lt"
	OpLessEqual    Operator = "lte"
	OpGreaterThan  Operator = "gt"
	OpGreaterEqual Operator = "gte"
	OpLike         Operator = "like"
)

// Operators lists every supported comparison suffix
var Operators = []Operator{OpNotEqual, OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual, OpLike}

// Valid reports whether op is one of the supported suffixes
func (op Operator) Valid() bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}

// BaseEntity is the minimal record shape served by a list resource
type BaseEntity struct {
	ID any `json:"id"`
}

// ListResponse is the canonical list result, regardless of how the server paginated
type ListResponse[T any] struct {
	Records []T `json:"records"`
	Total   int `json:"total"`
}

// PaginatedResponse is the envelope returned when a page is requested.
// Prev and Next are nil on the first and last page respectively.
type PaginatedResponse[T any] struct {
	Records []T  `json:"records"`
	First   int  `json:"first"`
	Prev    *int `json:"prev"`
	Next    *int `json:"next"`
	Last    int  `json:"last"`
	Pages   int  `json:"pages"`
	Items   int  `json:"items"`
}

// PaginationInfo is derived from a PaginatedResponse for page navigation
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}
