package core

// PageMetadata describes one page of a paged ledger query. Pages are
// zero-based.
type PageMetadata struct {
	TotalElements int64 `json:"totalElements"`
	TotalPages    int64 `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// TransactionPage is the result of a paged ledger query.
type TransactionPage struct {
	Transactions []Transaction
	Metadata     PageMetadata
}

// NewPageMetadata computes paging metadata for a total element count.
func NewPageMetadata(total int64, page, size int) PageMetadata {
	totalPages := int64(0)
	if size > 0 {
		totalPages = (total + int64(size) - 1) / int64(size)
	}
	return PageMetadata{
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   page,
		PageSize:      size,
		HasNext:       int64(page+1) < totalPages,
		HasPrevious:   page > 0,
	}
}
