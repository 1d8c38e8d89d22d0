package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemByCode(t *testing.T) {
	it, ok := ItemByCode("title_flame")
	assert.True(t, ok)
	assert.Equal(t, KindTitle, it.Kind)
	assert.Equal(t, int64(25), it.Cost)

	_, ok = ItemByCode("no_such_item")
	assert.False(t, ok)
}

func TestCatalogInvariants(t *testing.T) {
	seen := make(map[string]bool)
	for _, it := range Catalog {
		assert.False(t, seen[it.Code], "дубликат кода %s", it.Code)
		seen[it.Code] = true
		assert.Positive(t, it.Cost, "цена %s должна быть положительной", it.Code)
		assert.NotEmpty(t, it.Name)
		assert.Contains(t, []string{KindTitle, KindConsumable}, it.Kind)
	}
}
