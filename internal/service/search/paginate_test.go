package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	p := Paginate(seq(12), 2, 5)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, p.Items)
	assert.Equal(t, 12, p.TotalCount)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasMore)

	last := Paginate(seq(12), 3, 5)
	assert.Equal(t, []int{11, 12}, last.Items)
	assert.False(t, last.HasMore)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	p := Paginate(seq(10), 2, 5)
	assert.Equal(t, 2, p.TotalPages)
	assert.False(t, p.HasMore)
	assert.Len(t, p.Items, 5)
}

func TestPaginate_OutOfRange(t *testing.T) {
	p := Paginate(seq(12), 4, 5)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasMore)
	assert.Equal(t, 12, p.TotalCount)

	huge := Paginate(seq(3), 1<<40, 100)
	assert.Empty(t, huge.Items)
	assert.False(t, huge.HasMore)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int{}, 1, 20)
	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 0, p.TotalCount)
	assert.False(t, p.HasMore)
	assert.Empty(t, p.Items)
}

func TestPaginate_Completeness(t *testing.T) {
	for _, size := range []int{1, 3, 7, 23, 50} {
		items := seq(23)
		first := Paginate(items, 1, size)

		var all []int
		for page := 1; page <= first.TotalPages; page++ {
			all = append(all, Paginate(items, page, size).Items...)
		}
		assert.Equal(t, items, all, "size %d", size)
	}
}
