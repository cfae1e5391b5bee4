package service

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookshop_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}, &models.Voucher{}))

	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

func registerTestUser(t *testing.T, svc *AuthService, email string) *models.User {
	t.Helper()

	user, token, err := svc.Register(t.Context(), RegisterInput{
		FirstName:     "Jane",
		LastName:      "Reader",
		Email:         email,
		Password:      "Secret123",
		ContactNumber: "0123456789",
		Address:       "1 Library Lane",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return user
}
