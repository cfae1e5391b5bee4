package repo

import (
	"context"
	"time"

	"github.com/daspi/bookshop/internal/models"
)

func (r *GormRepo) CreateVoucher(ctx context.Context, v *models.Voucher) error {
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *GormRepo) VoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.DB.WithContext(ctx).Where("voucher_code = ?", code).First(&voucher).Error; err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *GormRepo) VoucherCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Voucher{}).
		Where("voucher_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) ActiveVouchers(ctx context.Context, userID string, now time.Time) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_expired = ? AND expiry_date > ?", userID, false, now).
		Order("purchase_date ASC").
		Find(&vouchers).Error
	if err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (r *GormRepo) ExpiredVouchers(ctx context.Context, userID string, now time.Time) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND (is_expired = ? OR expiry_date <= ?)", userID, true, now).
		Order("purchase_date ASC").
		Find(&vouchers).Error
	if err != nil {
		return nil, err
	}
	return vouchers, nil
}

// ReconcileExpired promotes the expired flag on every voucher of the
// user whose expiry date has passed. This is the explicit write behind
// the lazy-expiry reads.
func (r *GormRepo) ReconcileExpired(ctx context.Context, userID string, now time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Voucher{}).
		Where("user_id = ? AND is_expired = ? AND expiry_date <= ?", userID, false, now).
		Update("is_expired", true).Error
}

func (r *GormRepo) MarkVoucherExpired(ctx context.Context, code string) error {
	return r.DB.WithContext(ctx).Model(&models.Voucher{}).
		Where("voucher_code = ?", code).
		Update("is_expired", true).Error
}
