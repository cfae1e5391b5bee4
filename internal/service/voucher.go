package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daspi/bookshop/internal/ident"
	"github.com/daspi/bookshop/internal/logging"
	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/repo"
)

// VoucherTTL is how long a purchased voucher stays redeemable.
const VoucherTTL = 365 * 24 * time.Hour

type VoucherService struct {
	Repo *repo.GormRepo

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func (s *VoucherService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create issues a voucher with a unique 8-hex-character code and a
// one-year validity, snapshotting the owner's contact fields.
func (s *VoucherService) Create(ctx context.Context, owner *models.User, price float64) (*models.Voucher, error) {
	l := logging.FromContext(ctx).With("svc", "voucher.create")

	if price <= 0 {
		return nil, fmt.Errorf("voucherPrice must be positive: %w", ErrValidation)
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	voucher := models.Voucher{
		UserID:        owner.UserID,
		FirstName:     owner.FirstName,
		LastName:      owner.LastName,
		Email:         owner.Email,
		ContactNumber: owner.ContactNumber,
		Address:       owner.Address,
		VoucherCode:   code,
		VoucherPrice:  price,
		PurchaseDate:  now,
		ExpiryDate:    now.Add(VoucherTTL),
	}
	if err := s.Repo.CreateVoucher(ctx, &voucher); err != nil {
		return nil, fmt.Errorf("create voucher: %w", err)
	}

	l.Info("voucher_created", "user_id", owner.UserID, "code", code)
	return &voucher, nil
}

func (s *VoucherService) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < ident.MaxAttempts; attempt++ {
		code, err := ident.NewVoucherCode()
		if err != nil {
			return "", err
		}
		taken, err := s.Repo.VoucherCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check voucher code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique voucher code: %w", ErrInternal)
}

// Active lists the caller's vouchers that are neither flagged expired
// nor past their expiry date.
func (s *VoucherService) Active(ctx context.Context, owner *models.User) ([]models.Voucher, error) {
	vouchers, err := s.Repo.ActiveVouchers(ctx, owner.UserID, s.now())
	if err != nil {
		return nil, err
	}
	if vouchers == nil {
		vouchers = []models.Voucher{}
	}
	return vouchers, nil
}

// Expired lists the caller's spent and lapsed vouchers. Vouchers past
// their expiry date but not yet flagged are reconciled first, so the
// returned records always carry the flag.
func (s *VoucherService) Expired(ctx context.Context, owner *models.User) ([]models.Voucher, error) {
	now := s.now()
	if err := s.Repo.ReconcileExpired(ctx, owner.UserID, now); err != nil {
		return nil, fmt.Errorf("reconcile expired: %w", err)
	}
	vouchers, err := s.Repo.ExpiredVouchers(ctx, owner.UserID, now)
	if err != nil {
		return nil, err
	}
	if vouchers == nil {
		vouchers = []models.Voucher{}
	}
	return vouchers, nil
}

// Validate checks a code without consuming it. A voucher whose expiry
// has passed is flagged on the way out.
func (s *VoucherService) Validate(ctx context.Context, code string) (*models.Voucher, error) {
	if code == "" {
		return nil, fmt.Errorf("voucherCode is required: %w", ErrValidation)
	}

	voucher, err := s.Repo.VoucherByCode(ctx, code)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("voucher not found: %w", ErrNotFound)
		}
		return nil, err
	}

	now := s.now()
	if voucher.ExpiredAt(now) {
		if !voucher.IsExpired {
			if err := s.Repo.MarkVoucherExpired(ctx, code); err != nil {
				return nil, fmt.Errorf("mark expired: %w", err)
			}
		}
		return nil, fmt.Errorf("voucher has expired: %w", ErrExpired)
	}
	return voucher, nil
}

// Apply consumes a voucher: same checks as Validate, then the voucher
// is marked expired so a second apply fails.
func (s *VoucherService) Apply(ctx context.Context, code string) (*models.Voucher, error) {
	voucher, err := s.Validate(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.MarkVoucherExpired(ctx, code); err != nil {
		return nil, fmt.Errorf("mark expired: %w", err)
	}
	voucher.IsExpired = true

	logging.FromContext(ctx).Info("voucher_applied", "code", code)
	return voucher, nil
}
