package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with slug", func(t *testing.T) {
		category, err := NewCategory("Outdoor Gear", "Everything for the trail")
		require.NoError(t, err)

		assert.Equal(t, "Outdoor Gear", category.Name)
		assert.Equal(t, "outdoor-gear", category.Slug)
		assert.True(t, category.IsActive)
		assert.Nil(t, category.ParentID)
	})

	t.Run("publishes CategoryCreated event", func(t *testing.T) {
		category, err := NewCategory("Outdoor Gear", "")
		require.NoError(t, err)

		events := category.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeCategoryCreated, events[0].EventType())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "")
		require.Error(t, err)
	})
}

func TestCategoryParent(t *testing.T) {
	t.Run("set parent", func(t *testing.T) {
		category, err := NewCategory("Shoes", "")
		require.NoError(t, err)

		parentID := uuid.New()
		require.NoError(t, category.SetParent(&parentID))
		require.NotNil(t, category.ParentID)
		assert.Equal(t, parentID, *category.ParentID)
	})

	t.Run("category cannot parent itself", func(t *testing.T) {
		category, err := NewCategory("Shoes", "")
		require.NoError(t, err)

		err = category.SetParent(&category.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be its own parent")
	})
}

func TestCategoryRename(t *testing.T) {
	category, err := NewCategory("Shoes", "")
	require.NoError(t, err)

	require.NoError(t, category.Rename("Running Shoes & Boots"))
	assert.Equal(t, "running-shoes-boots", category.Slug)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Outdoor Gear", "outdoor-gear"},
		{"punctuation", "Shoes & Boots!", "shoes-boots"},
		{"diacritics", "Crème Brûlée Torch", "creme-brulee-torch"},
		{"collapses dashes", "a  --  b", "a-b"},
		{"trims dashes", "  -hello-  ", "hello"},
		{"numbers", "Size 42 EU", "size-42-eu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
