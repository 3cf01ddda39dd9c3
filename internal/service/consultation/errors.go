package consultation

import "errors"

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentClosed    = errors.New("appointment is in a terminal state")
	ErrAlreadyConsulted     = errors.New("appointment already has a consultation")
	ErrDiagnosisRequired    = errors.New("diagnosis is required")
	ErrInvalidPrescription  = errors.New("invalid prescription")
)
