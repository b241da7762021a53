package service

import "errors"

// Sentinel errors distinguished by the HTTP layer. Everything else maps to a
// generic server error.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrObjectNotFound = errors.New("object not found")
)
