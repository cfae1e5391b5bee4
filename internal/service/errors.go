package service

import "errors"

// Sentinel errors the handlers translate into HTTP statuses: 400 for
// validation/conflict/expired, 401 for credentials, 404 for not found,
// 500 for internal.
var (
	ErrValidation         = errors.New("validation")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrExpired            = errors.New("expired")
	ErrInternal           = errors.New("internal")
)
