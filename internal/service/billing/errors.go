package billing

import "errors"

var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrOverpayment   = errors.New("payment exceeds outstanding balance")
	ErrAlreadyPaid   = errors.New("bill is already settled")
)
