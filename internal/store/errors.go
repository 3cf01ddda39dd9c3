package store

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrEmptyID           = errors.New("empty id")
	ErrInsufficientStock = errors.New("insufficient stock")
)
