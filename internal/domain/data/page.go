package data

// PageResponse is the envelope returned by every paginated listing. Size is
// the number of items actually on this page, which may be smaller than the
// requested size on the last page or zero past the end of the data.
type PageResponse[T any] struct {
	Content    []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalSize  int64 `json:"totalSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPageResponse builds the envelope for page pageNo requested with
// requestedSize, given the total count of matching rows. A completely empty
// result at page zero still reports one total page; an out of range page
// keeps the accurate totals.
func NewPageResponse[T any](content []T, pageNo, requestedSize int, totalSize int64) PageResponse[T] {
	totalPages := int((totalSize + int64(requestedSize) - 1) / int64(requestedSize))
	if totalSize == 0 && pageNo == 0 {
		totalPages = 1
	}
	if content == nil {
		content = []T{}
	}
	return PageResponse[T]{
		Content:    content,
		Page:       pageNo,
		Size:       len(content),
		TotalSize:  totalSize,
		TotalPages: totalPages,
	}
}

// MapPage converts the content of a page with the given mapping, keeping the
// envelope untouched.
func MapPage[E, T any](items []E, pageNo, requestedSize int, totalSize int64, fn func(E) T) PageResponse[T] {
	content := make([]T, len(items))
	for i, item := range items {
		content[i] = fn(item)
	}
	return NewPageResponse(content, pageNo, requestedSize, totalSize)
}
