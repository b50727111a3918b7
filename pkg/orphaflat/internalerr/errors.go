package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNoRecords      = errors.New("no records found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownDataset = errors.New("unknown dataset kind")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
