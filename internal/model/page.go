package model

const (
	DefaultPageNumber    = 1
	DefaultPageSize      = 10
	DefaultSortDirection = "asc"
)

// PageRequest is the canonical list query.
type PageRequest struct {
	PageNumber    int          `json:"pageNumber"`
	PageSize      int          `json:"pageSize"`
	SortBy        string       `json:"sortBy,omitempty"`
	SortDirection string       `json:"sortDirection,omitempty"`
	SearchText    string       `json:"searchText,omitempty"`
	Status        StatusFilter `json:"-"`
}

func NewPageRequest() PageRequest {
	return PageRequest{
		PageNumber:    DefaultPageNumber,
		PageSize:      DefaultPageSize,
		SortDirection: DefaultSortDirection,
	}
}

// PagedResult is one page plus the metadata needed to render page controls.
type PagedResult[T any] struct {
	Data            []T  `json:"data"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalRecords    int  `json:"totalRecords"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

func NewPagedResult[T any](data []T, pageNumber, pageSize, totalRecords int) *PagedResult[T] {
	if data == nil {
		data = []T{}
	}
	pages := TotalPages(totalRecords, pageSize)
	return &PagedResult[T]{
		Data:            data,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalRecords:    totalRecords,
		TotalPages:      pages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < pages,
	}
}

// TotalPages is ceil(total/size), 0 when there is nothing to show.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
