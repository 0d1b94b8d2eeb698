package cloakroom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsTotalAndString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items Items
		total int
		want  string
	}{
		{
			name:  "empty",
			items: Items{},
			total: 0,
			want:  "num coats: 0, num backpacks: 0, num umbrellas: 0, num other items: 0",
		},
		{
			name:  "coats and other items",
			items: Items{Coats: 2, OtherItems: 1},
			total: 3,
			want:  "num coats: 2, num backpacks: 0, num umbrellas: 0, num other items: 1",
		},
		{
			name:  "every category",
			items: Items{Coats: 1, Backpacks: 2, Umbrellas: 1, OtherItems: 10},
			total: 14,
			want:  "num coats: 1, num backpacks: 2, num umbrellas: 1, num other items: 10",
		},
		{
			name:  "counts at byte limit do not wrap",
			items: Items{Coats: 255, Backpacks: 255, Umbrellas: 255, OtherItems: 255},
			total: 1020,
			want:  "num coats: 255, num backpacks: 255, num umbrellas: 255, num other items: 255",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.total, tc.items.Total())
			assert.Equal(t, tc.want, tc.items.String())
		})
	}
}

func TestItemsGet(t *testing.T) {
	items := Items{Coats: 1, Backpacks: 2, Umbrellas: 3, OtherItems: 4}

	assert.Equal(t, uint8(1), items.Get(Coats))
	assert.Equal(t, uint8(2), items.Get(Backpacks))
	assert.Equal(t, uint8(3), items.Get(Umbrellas))
	assert.Equal(t, uint8(4), items.Get(OtherItems))
	assert.Equal(t, uint8(0), items.Get(Category(9)))
}

func TestCategoryStringOutOfRange(t *testing.T) {
	assert.Equal(t, "category(7)", Category(7).String())
}
