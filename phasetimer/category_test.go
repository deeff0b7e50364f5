package phasetimer

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategoriesLayout(t *testing.T) {
	cs, err := NewCategories("Pair", "comm")
	require.NoError(t, err)

	assert.Equal(t, 4, cs.Count())
	assert.Equal(t, "total", cs.Name(Total))
	assert.Equal(t, "pair", cs.Name(1))
	assert.Equal(t, "comm", cs.Name(2))
	assert.Equal(t, Category(3), cs.Sync())
	assert.Equal(t, "sync", cs.Name(cs.Sync()))
	assert.Equal(t, []Category{1, 2}, cs.Phases())

	c, ok := cs.Lookup("PAIR")
	assert.True(t, ok)
	assert.Equal(t, Category(1), c)
	_, ok = cs.Lookup("kspace")
	assert.False(t, ok)
}

func TestNewCategoriesRejectsReservedNames(t *testing.T) {
	for _, name := range []string{"total", "SYNC", ""} {
		_, err := NewCategories("pair", name)
		assert.True(t, errors.Is(err, ErrReservedCategory), "name %q", name)
	}
}

func TestNewCategoriesRejectsDuplicates(t *testing.T) {
	_, err := NewCategories("pair", "comm", "Pair")
	assert.True(t, errors.Is(err, ErrDuplicateCategory))
}

func TestCategoriesBounds(t *testing.T) {
	cs, err := NewCategories()
	require.NoError(t, err)

	assert.Equal(t, 2, cs.Count())
	assert.Empty(t, cs.Phases())
	assert.False(t, cs.Stampable(Total))
	assert.True(t, cs.Stampable(cs.Sync()))
	assert.False(t, cs.Stampable(2))
	assert.False(t, cs.Valid(-1))
	assert.Equal(t, "", cs.Name(7))
}

func TestDefaultCategories(t *testing.T) {
	cs := DefaultCategories()

	assert.Equal(t, 9, cs.Count())
	_, ok := cs.Lookup("kspace")
	assert.True(t, ok)
}
