// Package ident generates the short public identifiers used by the
// shop: 8-digit user ids and 8-hex-character voucher codes. Uniqueness
// is the caller's problem; both generators are paired with bounded
// retry loops in the services.
package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// MaxAttempts bounds the uniqueness retry loops built on these
// generators.
const MaxAttempts = 10

// NewUserID returns a random 8-digit numeric identifier.
func NewUserID() (string, error) {
	// 10000000..99999999
	n, err := rand.Int(rand.Reader, big.NewInt(90000000))
	if err != nil {
		return "", fmt.Errorf("ident: %w", err)
	}
	return fmt.Sprintf("%08d", n.Int64()+10000000), nil
}

// NewVoucherCode returns 4 random bytes as 8 uppercase hex characters.
func NewVoucherCode() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("ident: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(b[:])), nil
}
