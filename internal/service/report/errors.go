package report

import "errors"

var (
	ErrUnknownReport = errors.New("unknown report")
	ErrUnknownFormat = errors.New("unknown export format")
	ErrInvalidRange  = errors.New("invalid date range")
)
