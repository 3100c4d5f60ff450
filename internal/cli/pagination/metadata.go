package pagination

// Meta describes the window a list command returned.
type Meta struct {
	Offset     int  `json:"offset"                yaml:"offset"`
	Limit      int  `json:"limit"                 yaml:"limit"`
	Page       int  `json:"page,omitempty"        yaml:"page,omitempty"`
	Returned   int  `json:"returned"              yaml:"returned"`
	HasMore    bool `json:"has_more"              yaml:"has_more"`
	NextOffset *int `json:"next_offset,omitempty" yaml:"next_offset,omitempty"`
	NextPage   *int `json:"next_page,omitempty"   yaml:"next_page,omitempty"`
}

// NewMeta builds the metadata for a request made with p that returned
// returned entries.
func NewMeta(p Params, returned int, hasMore bool) Meta {
	offset, limit := p.OffsetLimit()
	m := Meta{Offset: offset, Limit: limit, Returned: returned, HasMore: hasMore}
	if p.IsPageBased() {
		m.Page = p.Page
	}
	if hasMore {
		next := offset + limit
		m.NextOffset = &next
		if p.IsPageBased() {
			nextPage := p.Page + 1
			m.NextPage = &nextPage
		}
	}
	return m
}
