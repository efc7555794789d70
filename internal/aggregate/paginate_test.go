package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate_PartitionReconstructsList(t *testing.T) {
	list := make([]int, 23)
	for i := range list {
		list[i] = i
	}

	var rebuilt []int
	for page := 1; ; page++ {
		slice, info := Paginate(list, page, 5)
		rebuilt = append(rebuilt, slice...)
		if page >= info.TotalPages {
			break
		}
	}

	assert.Equal(t, list, rebuilt)
}

func TestPaginate_PageInfo(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e", "f", "g"}

	slice, info := Paginate(list, 2, 3)
	assert.Equal(t, []string{"d", "e", "f"}, slice)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 4, info.From)
	assert.Equal(t, 6, info.To)
	assert.Equal(t, 7, info.Total)
}

func TestPaginate_ClampsPastEnd(t *testing.T) {
	list := []int{1, 2, 3, 4, 5}

	slice, info := Paginate(list, 99, 2)
	assert.Equal(t, []int{5}, slice)
	assert.Equal(t, 3, info.Page)

	slice, info = Paginate(list, 0, 2)
	assert.Equal(t, []int{1, 2}, slice)
	assert.Equal(t, 1, info.Page)
}

func TestPaginate_EmptyList(t *testing.T) {
	slice, info := Paginate([]int(nil), 1, 10)
	assert.Empty(t, slice)
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 0, info.From)
	assert.Equal(t, 0, info.To)
	assert.Equal(t, 0, info.Total)
}

func TestPaginate_ZeroPageSizeReturnsAll(t *testing.T) {
	list := []int{1, 2, 3}
	slice, info := Paginate(list, 1, 0)
	require.Equal(t, list, slice)
	assert.Equal(t, 1, info.TotalPages)
}
