package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Callers detect
// them with errors.Is and translate them into operational errors at the
// service layer.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
