package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daspi/bookshop/internal/models"
)

func newCartEnv(t *testing.T) (*CartService, *models.User) {
	t.Helper()

	repo := newTestRepo(t)
	auth := &AuthService{Repo: repo, JWTSecret: testSecret}
	user := registerTestUser(t, auth, "cart@example.com")
	return &CartService{Repo: repo}, user
}

func TestCartWithoutItems(t *testing.T) {
	t.Parallel()

	svc, user := newCartEnv(t)

	cart, err := svc.Cart(t.Context(), user)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, cart.UserID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	t.Parallel()

	svc, user := newCartEnv(t)

	cart, err := svc.AddItem(t.Context(), user, "vol-1", "The Go Programming Language", 1, 19.99)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(1), cart.Items[0].Quantity)

	cart, err = svc.AddItem(t.Context(), user, "vol-1", "The Go Programming Language", 2, 19.99)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(3), cart.Items[0].Quantity)
	assert.Equal(t, 19.99, cart.Items[0].Price)

	cart, err = svc.AddItem(t.Context(), user, "vol-2", "Learning Go", 1, 12.50)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestAddItemValidation(t *testing.T) {
	t.Parallel()

	svc, user := newCartEnv(t)

	tests := []struct {
		name     string
		bookID   string
		bookName string
		quantity uint
		price    float64
	}{
		{"missing book id", "", "Some Title", 1, 9.99},
		{"missing book name", "vol-1", "", 1, 9.99},
		{"zero quantity", "vol-1", "Some Title", 0, 9.99},
		{"negative price", "vol-1", "Some Title", 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(t.Context(), user, tt.bookID, tt.bookName, tt.quantity, tt.price)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	t.Parallel()

	svc, user := newCartEnv(t)
	_, err := svc.AddItem(t.Context(), user, "vol-1", "The Go Programming Language", 2, 19.99)
	require.NoError(t, err)

	t.Run("overwrites quantity", func(t *testing.T) {
		cart, err := svc.UpdateItem(t.Context(), user, "vol-1", 5)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, uint(5), cart.Items[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		cart, err := svc.UpdateItem(t.Context(), user, "vol-1", 0)
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.UpdateItem(t.Context(), user, "vol-missing", 2)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Parallel()

	svc, user := newCartEnv(t)
	_, err := svc.AddItem(t.Context(), user, "vol-1", "The Go Programming Language", 1, 19.99)
	require.NoError(t, err)
	_, err = svc.AddItem(t.Context(), user, "vol-2", "Learning Go", 1, 12.50)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(t.Context(), user, "vol-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "vol-2", cart.Items[0].BookID)

	_, err = svc.RemoveItem(t.Context(), user, "vol-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClearCart(t *testing.T) {
	t.Parallel()

	svc, user := newCartEnv(t)
	_, err := svc.AddItem(t.Context(), user, "vol-1", "The Go Programming Language", 1, 19.99)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(t.Context(), user))

	cart, err := svc.Cart(t.Context(), user)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing an already empty cart is not an error.
	require.NoError(t, svc.Clear(t.Context(), user))
}
