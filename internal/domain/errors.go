package domain

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP status codes.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrBrokerNotFound     = errors.New("unknown broker")
	ErrNotConnected       = errors.New("broker not connected")
	ErrConnectionFailed   = errors.New("broker connection failed")
	ErrOrderPlacement     = errors.New("order placement failed")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrder       = errors.New("invalid order request")
	ErrSyncFailed         = errors.New("broker sync failed")
)
