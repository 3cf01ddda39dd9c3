package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidDate         = errors.New("invalid appointment date")
	ErrSlotRequired        = errors.New("time slot is required")
	ErrReasonRequired      = errors.New("visit reason is required")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrSlotTaken           = errors.New("time slot is already booked")
	ErrTerminalState       = errors.New("appointment is in a terminal state")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
