package strapi

// Query is the structured filter/pagination/sort/populate specification
// accepted by the list operations. Every field is independently optional;
// absence means "do not constrain this axis". Filters and the structured
// form of populate are opaque to this layer and pass through unmodified —
// the backend owns their grammar.
type Query struct {
	Filters    map[string]interface{} `json:"filters,omitempty" mapstructure:"filters"`
	Pagination *Pagination            `json:"pagination,omitempty" mapstructure:"pagination"`
	Sort       []string               `json:"sort,omitempty" mapstructure:"sort"`
	Populate   interface{}            `json:"populate,omitempty" mapstructure:"populate"`
}

type Pagination struct {
	Page     int `json:"page,omitempty" mapstructure:"page"`
	PageSize int `json:"pageSize,omitempty" mapstructure:"pageSize"`
}

// Params translates the query into the backend's parameter map. A key is
// present exactly when the source field is; the backend treats an
// explicitly empty constraint differently from an absent one, so no key
// ever appears with a default placeholder.
func (q *Query) Params() map[string]interface{} {
	params := map[string]interface{}{}
	if q == nil {
		return params
	}
	if q.Filters != nil {
		params["filters"] = q.Filters
	}
	if q.Pagination != nil {
		page := map[string]interface{}{}
		if q.Pagination.Page > 0 {
			page["page"] = q.Pagination.Page
		}
		if q.Pagination.PageSize > 0 {
			page["pageSize"] = q.Pagination.PageSize
		}
		params["pagination"] = page
	}
	if q.Sort != nil {
		params["sort"] = q.Sort
	}
	if q.Populate != nil {
		params["populate"] = q.Populate
	}
	return params
}
