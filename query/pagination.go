package query

// Pagination is one of PageSize, PageLimit or SliceRange
type Pagination interface {
	apply(p *Params)
}

// PageSize pages with _page and _per_page
type PageSize struct {
	Page int
	Size int
}

// PageLimit pages with _page and _limit
type PageLimit struct {
	Page  int
	Limit int
}

// SliceRange selects records [Start, End) with _start and _end
type SliceRange struct {
	Start int
	End   int
}

var paginationKeys = []string{KeyPage, KeyLimit, KeyPerPage, KeyStart, KeyEnd}

func (m PageSize) apply(p *Params) {
	p.set(KeyPage, m.Page)
	p.set(KeyPerPage, m.Size)
}

func (m PageLimit) apply(p *Params) {
	p.set(KeyPage, m.Page)
	p.set(KeyLimit, m.Limit)
}

func (m SliceRange) apply(p *Params) {
	p.set(KeyStart, m.Start)
	p.set(KeyEnd, m.End)
}

// WithPagination replaces every pagination parameter with mode.
// Paginate, PaginateBySize and Slice leave the other modes in place, so mixing
// them sends several modes and the server decides which one wins.
func (b *Builder) WithPagination(mode Pagination) *Builder {
	for _, key := range paginationKeys {
		b.params.del(key)
	}
	if mode != nil {
		mode.apply(&b.params)
	}
	return b
}
