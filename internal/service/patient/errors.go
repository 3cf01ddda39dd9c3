package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrNameRequired    = errors.New("patient name is required")
	ErrInvalidAge      = errors.New("patient age must be at least 1")
	ErrContactRequired = errors.New("contact number is required")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidGender   = errors.New("invalid gender")
	ErrEmptyIDProof    = errors.New("id proof file is empty")
)
