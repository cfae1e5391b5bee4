package cartclient

import (
	"context"
	"net/http"
	"time"
)

type Voucher struct {
	UserID       string    `json:"userId"`
	VoucherCode  string    `json:"voucherCode"`
	VoucherPrice float64   `json:"voucherPrice"`
	PurchaseDate time.Time `json:"purchaseDate"`
	ExpiryDate   time.Time `json:"expiryDate"`
	IsExpired    bool      `json:"isExpired"`
}

// VoucherCheck is the reduced shape validate/apply return.
type VoucherCheck struct {
	VoucherCode  string    `json:"voucherCode"`
	VoucherPrice float64   `json:"voucherPrice"`
	ExpiryDate   time.Time `json:"expiryDate,omitempty"`
}

func (s *Session) BuyVoucher(ctx context.Context, price float64) (*Voucher, error) {
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	body := map[string]float64{"voucherPrice": price}
	var voucher Voucher
	if err := s.do(ctx, http.MethodPost, "/api/vouchers", body, &voucher); err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (s *Session) ActiveVouchers(ctx context.Context) ([]Voucher, error) {
	return s.listVouchers(ctx, "/api/vouchers/active")
}

func (s *Session) ExpiredVouchers(ctx context.Context) ([]Voucher, error) {
	return s.listVouchers(ctx, "/api/vouchers/expired")
}

func (s *Session) listVouchers(ctx context.Context, path string) ([]Voucher, error) {
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	var vouchers []Voucher
	if err := s.do(ctx, http.MethodGet, path, nil, &vouchers); err != nil {
		return nil, err
	}
	return vouchers, nil
}

func (s *Session) ValidateVoucher(ctx context.Context, code string) (*VoucherCheck, error) {
	return s.voucherCheck(ctx, "/api/vouchers/validate", code)
}

// ApplyVoucher consumes the voucher; a second apply of the same code
// fails with the server's expired error.
func (s *Session) ApplyVoucher(ctx context.Context, code string) (*VoucherCheck, error) {
	return s.voucherCheck(ctx, "/api/vouchers/apply", code)
}

func (s *Session) voucherCheck(ctx context.Context, path, code string) (*VoucherCheck, error) {
	if !s.Authenticated() {
		return nil, ErrUnauthenticated
	}

	body := map[string]string{"voucherCode": code}
	var check VoucherCheck
	if err := s.do(ctx, http.MethodPost, path, body, &check); err != nil {
		return nil, err
	}
	return &check, nil
}
