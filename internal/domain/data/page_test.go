package data_test

import (
	"strconv"
	"testing"

	"account-service/internal/domain/data"

	"github.com/stretchr/testify/assert"
)

func TestNewPageResponseFullPage(t *testing.T) {
	page := data.NewPageResponse([]string{"a", "b", "c"}, 0, 3, 7)

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 3, page.Size)
	assert.Equal(t, int64(7), page.TotalSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNewPageResponseLastPartialPage(t *testing.T) {
	page := data.NewPageResponse([]string{"g"}, 2, 3, 7)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 1, page.Size)
	assert.Equal(t, int64(7), page.TotalSize)
	assert.Equal(t, 3, page.TotalPages)
}

func TestNewPageResponseEmptyFirstPageReportsOneTotalPage(t *testing.T) {
	page := data.NewPageResponse([]string{}, 0, 25, 0)

	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 0, page.Size)
	assert.Equal(t, int64(0), page.TotalSize)
	assert.Equal(t, 1, page.TotalPages)
}

func TestNewPageResponseEmptyLaterPageReportsZeroTotalPages(t *testing.T) {
	page := data.NewPageResponse([]string{}, 2, 25, 0)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 0, page.Size)
	assert.Equal(t, 0, page.TotalPages)
}

func TestNewPageResponsePastEndKeepsAccurateTotals(t *testing.T) {
	page := data.NewPageResponse([]string{}, 9, 25, 7)

	assert.Equal(t, 9, page.Page)
	assert.Equal(t, 0, page.Size)
	assert.Equal(t, int64(7), page.TotalSize)
	assert.Equal(t, 1, page.TotalPages)
}

func TestNewPageResponseNilContentBecomesEmptySlice(t *testing.T) {
	page := data.NewPageResponse[string](nil, 0, 25, 0)

	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}

func TestMapPage(t *testing.T) {
	page := data.MapPage([]int{1, 2, 3}, 1, 3, 9, func(n int) string {
		return strconv.Itoa(n * 10)
	})

	assert.Equal(t, []string{"10", "20", "30"}, page.Content)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Size)
	assert.Equal(t, int64(9), page.TotalSize)
	assert.Equal(t, 3, page.TotalPages)
}
