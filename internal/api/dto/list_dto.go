package dto

// ListRequest is the common filter/sort/page shape of list endpoints.
// Resource DTOs embed it and contribute their named filter fields.
type ListRequest struct {
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
	PageSize  int               `json:"pageSize"`
	Search    string            `json:"search"`
	SortBy    string            `json:"sortBy"`
	SortOrder string            `json:"sortOrder"`
	Filters   map[string]string `json:"filters"`
}

// EffectivePageSize resolves the pageSize/limit alias; pageSize wins.
func (r ListRequest) EffectivePageSize() int {
	if r.PageSize > 0 {
		return r.PageSize
	}
	return r.Limit
}

// MergedFilters combines the generic filters map with named fields. Named
// fields overwrite map entries of the same key.
func (r ListRequest) MergedFilters(named map[string]string) map[string]string {
	merged := make(map[string]string, len(r.Filters)+len(named))
	for k, v := range r.Filters {
		merged[k] = v
	}
	for k, v := range named {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}

// DetailRequest addresses a single record through a POST body.
type DetailRequest struct {
	ID any `json:"id"`
}

// DeleteRequest addresses a single record for deletion.
type DeleteRequest struct {
	ID any `json:"id"`
}
