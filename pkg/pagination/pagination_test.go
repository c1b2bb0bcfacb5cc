package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMeta(t *testing.T) {
	meta := NewMeta(25, 2, 10)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(25), meta.TotalItems)
	assert.Equal(t, 10, meta.Limit)

	assert.Equal(t, 0, NewMeta(0, 1, 10).TotalPages)
	assert.Equal(t, 1, NewMeta(10, 1, 10).TotalPages)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 0, Offset(0, 10))
	assert.Equal(t, 0, Offset(-3, 10))
}
