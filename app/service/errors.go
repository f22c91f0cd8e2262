package service

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPaymentUnverified   = errors.New("payment not verified")
	ErrProviderUnavailable = errors.New("payment provider request failed")
	ErrNoSuchPage          = errors.New("no such page")
	ErrContentMissing      = errors.New("content object missing")
)
