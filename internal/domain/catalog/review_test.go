package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductReview(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	t.Run("creates pending review", func(t *testing.T) {
		review, err := NewProductReview(productID, userID, 4, "Great shoes", "Comfortable on long runs")
		require.NoError(t, err)

		assert.Equal(t, 4, review.Rating)
		assert.False(t, review.IsApproved)
		assert.False(t, review.IsVerifiedPurchase)
	})

	t.Run("rating bounds", func(t *testing.T) {
		_, err := NewProductReview(productID, userID, 0, "Bad", "")
		require.Error(t, err)

		_, err = NewProductReview(productID, userID, 6, "Too good", "")
		require.Error(t, err)
	})

	t.Run("title required", func(t *testing.T) {
		_, err := NewProductReview(productID, userID, 3, "  ", "")
		require.Error(t, err)
	})
}

func TestReviewApproval(t *testing.T) {
	review, err := NewProductReview(uuid.New(), uuid.New(), 5, "Excellent", "")
	require.NoError(t, err)

	require.NoError(t, review.Approve())
	assert.True(t, review.IsApproved)

	err = review.Approve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already approved")
}
