package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daspi/bookshop/internal/models"
)

func newVoucherEnv(t *testing.T) (*VoucherService, *models.User) {
	t.Helper()

	repo := newTestRepo(t)
	auth := &AuthService{Repo: repo, JWTSecret: testSecret}
	user := registerTestUser(t, auth, "voucher@example.com")
	return &VoucherService{Repo: repo}, user
}

func TestCreateVoucher(t *testing.T) {
	t.Parallel()

	svc, user := newVoucherEnv(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return issued }

	voucher, err := svc.Create(t.Context(), user, 50)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), voucher.VoucherCode)
	assert.Equal(t, 50.0, voucher.VoucherPrice)
	assert.Equal(t, user.UserID, voucher.UserID)
	assert.Equal(t, user.Email, voucher.Email)
	assert.Equal(t, issued.Add(VoucherTTL), voucher.ExpiryDate)
	assert.False(t, voucher.IsExpired)

	_, err = svc.Create(t.Context(), user, 0)
	require.ErrorIs(t, err, ErrValidation)
	_, err = svc.Create(t.Context(), user, -10)
	require.ErrorIs(t, err, ErrValidation)
}

func TestVoucherCodesAreUnique(t *testing.T) {
	t.Parallel()

	svc, user := newVoucherEnv(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		voucher, err := svc.Create(t.Context(), user, 25)
		require.NoError(t, err)
		assert.False(t, seen[voucher.VoucherCode], "code %q issued twice", voucher.VoucherCode)
		seen[voucher.VoucherCode] = true
	}
}

func TestVoucherListsSplitOnExpiry(t *testing.T) {
	t.Parallel()

	svc, user := newVoucherEnv(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return issued }

	fresh, err := svc.Create(t.Context(), user, 30)
	require.NoError(t, err)
	stale, err := svc.Create(t.Context(), user, 40)
	require.NoError(t, err)

	active, err := svc.Active(t.Context(), user)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	expired, err := svc.Expired(t.Context(), user)
	require.NoError(t, err)
	assert.Empty(t, expired)

	// Jump past the second voucher's expiry by consuming it, then past
	// the clock for the first.
	_, err = svc.Apply(t.Context(), stale.VoucherCode)
	require.NoError(t, err)

	active, err = svc.Active(t.Context(), user)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, fresh.VoucherCode, active[0].VoucherCode)

	svc.Now = func() time.Time { return issued.Add(VoucherTTL + time.Hour) }

	active, err = svc.Active(t.Context(), user)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Lapsed-but-unflagged vouchers get the flag promoted when listed.
	expired, err = svc.Expired(t.Context(), user)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	for _, v := range expired {
		assert.True(t, v.IsExpired)
	}
}

func TestValidateVoucher(t *testing.T) {
	t.Parallel()

	svc, user := newVoucherEnv(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return issued }

	voucher, err := svc.Create(t.Context(), user, 30)
	require.NoError(t, err)

	t.Run("valid code", func(t *testing.T) {
		got, err := svc.Validate(t.Context(), voucher.VoucherCode)
		require.NoError(t, err)
		assert.Equal(t, voucher.VoucherPrice, got.VoucherPrice)
	})

	t.Run("empty code", func(t *testing.T) {
		_, err := svc.Validate(t.Context(), "")
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.Validate(t.Context(), "DEADBEEF")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("lapsed code is flagged", func(t *testing.T) {
		svc.Now = func() time.Time { return issued.Add(VoucherTTL + time.Hour) }
		defer func() { svc.Now = func() time.Time { return issued } }()

		_, err := svc.Validate(t.Context(), voucher.VoucherCode)
		require.ErrorIs(t, err, ErrExpired)

		stored, err := svc.Repo.VoucherByCode(t.Context(), voucher.VoucherCode)
		require.NoError(t, err)
		assert.True(t, stored.IsExpired)
	})
}

func TestApplyVoucherIsOneShot(t *testing.T) {
	t.Parallel()

	svc, user := newVoucherEnv(t)

	voucher, err := svc.Create(t.Context(), user, 30)
	require.NoError(t, err)

	applied, err := svc.Apply(t.Context(), voucher.VoucherCode)
	require.NoError(t, err)
	assert.True(t, applied.IsExpired)

	_, err = svc.Apply(t.Context(), voucher.VoucherCode)
	require.ErrorIs(t, err, ErrExpired)
}
