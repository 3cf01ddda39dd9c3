package pharmacy

import "errors"

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrMedicineNotFound     = errors.New("medicine not found")
	ErrNothingToDispense    = errors.New("consultation has no prescriptions")
	ErrAlreadyDispensed     = errors.New("consultation already has a medicine bill")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)
