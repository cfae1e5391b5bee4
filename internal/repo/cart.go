package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/daspi/bookshop/internal/models"
)

func (r *GormRepo) CartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpsertItem loads or creates the owner's cart and accumulates the
// quantity of an existing line with the same book id; the line's title
// and price are kept from the first add.
func (r *GormRepo) UpsertItem(ctx context.Context, owner *models.User, bookID, bookName string, quantity uint, price float64) (*models.Cart, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart := models.Cart{
			UserID:        owner.UserID,
			FirstName:     owner.FirstName,
			LastName:      owner.LastName,
			Email:         owner.Email,
			ContactNumber: owner.ContactNumber,
			Address:       owner.Address,
		}
		if err := tx.Where("user_id = ?", owner.UserID).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND book_id = ?", cart.ID, bookID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:   cart.ID,
			BookID:   bookID,
			BookName: bookName,
			Quantity: quantity,
			Price:    price,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return r.CartByUser(ctx, owner.UserID)
}

// SetItemQuantity overwrites a line's quantity, removing the line when
// the new quantity is zero or below. Returns gorm.ErrRecordNotFound
// when the cart or the line does not exist.
func (r *GormRepo) SetItemQuantity(ctx context.Context, userID, bookID string, quantity int) (*models.Cart, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND book_id = ?", cart.ID, bookID).First(&item).Error; err != nil {
			return err
		}

		if quantity <= 0 {
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return r.CartByUser(ctx, userID)
}

// RemoveItem deletes a single line. Returns gorm.ErrRecordNotFound when
// the cart or the line does not exist.
func (r *GormRepo) RemoveItem(ctx context.Context, userID, bookID string) (*models.Cart, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND book_id = ?", cart.ID, bookID).First(&item).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return r.CartByUser(ctx, userID)
}

// DeleteCart removes the cart document and its lines. Deleting a cart
// that does not exist is not an error.
func (r *GormRepo) DeleteCart(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if IsNotFound(err) {
				return nil
			}
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
}
