// Package query builds json-server list queries.
//
// A Builder accumulates field conditions, pagination, sorting, relations and
// full-text search into one ordered parameter set:
//
//	q := query.New().
//		Where("name_like", "john").
//		WhereOp("age", models.OpGreaterEqual, 18).
//		PaginateBySize(1, 10).
//		Sort("createdAt", models.OrderDesc)
//	resp, err := http.Get("http://localhost:3000/users?" + q.Encode())
//
// A Builder is meant for a single request and is not safe for concurrent use.
package query

import "jsonq/models"

// Reserved parameter names understood by json-server
const (
	KeyPage    = "_page"
	KeyLimit   = "_limit"
	KeyPerPage = "_per_page"
	KeyStart   = "_start"
	KeyEnd     = "_end"
	KeySort    = "_sort"
	KeyOrder   = "_order"
	KeyEmbed   = "_embed"
	KeyExpand  = "_expand"
	KeySearch  = "q"
)

// Builder accumulates query parameters for one list request.
// Every method returns the builder so calls can be chained; none of them fail.
type Builder struct {
	params Params
}

// New returns an empty builder
func New() *Builder {
	return &Builder{}
}

// Where sets a field condition. key is either a bare field name (exact match)
// or a field name with an operator suffix such as "age_gte".
func (b *Builder) Where(key string, value any) *Builder {
	b.params.set(key, value)
	return b
}

// WhereOp sets the condition field_op, e.g. WhereOp("age", models.OpGreaterEqual, 18)
func (b *Builder) WhereOp(field string, op models.Operator, value any) *Builder {
	return b.Where(OperatorKey(field, op), value)
}

// OperatorKey returns the suffixed parameter name for field and op
func OperatorKey(field string, op models.Operator) string {
	return field + "_" + string(op)
}

// Paginate sets _page and _limit (json-server v0 paging)
func (b *Builder) Paginate(page, limit int) *Builder {
	b.params.set(KeyPage, page)
	b.params.set(KeyLimit, limit)
	return b
}

// PaginateBySize sets _page and _per_page (json-server v1 paging)
func (b *Builder) PaginateBySize(page, pageSize int) *Builder {
	b.params.set(KeyPage, page)
	b.params.set(KeyPerPage, pageSize)
	return b
}

// Slice sets _start and _end; end is exclusive
func (b *Builder) Slice(start, end int) *Builder {
	b.params.set(KeyStart, start)
	b.params.set(KeyEnd, end)
	return b
}

// Sort orders by field, which may list several comma-separated names.
// The order applies to all of them and defaults to ascending.
func (b *Builder) Sort(field string, order ...models.Order) *Builder {
	direction := models.OrderAsc
	if len(order) > 0 && order[0] != "" {
		direction = order[0]
	}
	b.params.set(KeySort, field)
	b.params.set(KeyOrder, string(direction))
	return b
}

// Embed pulls child collections into each record
func (b *Builder) Embed(resources ...string) *Builder {
	b.params.set(KeyEmbed, relationValue(resources))
	return b
}

// Expand pulls the parent entity into each record
func (b *Builder) Expand(resources ...string) *Builder {
	b.params.set(KeyExpand, relationValue(resources))
	return b
}

// Search sets the full-text keyword
func (b *Builder) Search(keyword string) *Builder {
	b.params.set(KeySearch, keyword)
	return b
}

// Build returns a copy of the accumulated parameters
func (b *Builder) Build() Params {
	return b.params.clone()
}

// Encode serializes the accumulated parameters into a query string
func (b *Builder) Encode() string {
	return b.params.Encode()
}

// String implements fmt.Stringer
func (b *Builder) String() string {
	return b.Encode()
}

// relationValue keeps a single name scalar and several names a sequence
func relationValue(resources []string) any {
	switch len(resources) {
	case 0:
		return nil
	case 1:
		return resources[0]
	default:
		out := make([]string, len(resources))
		copy(out, resources)
		return out
	}
}
