// Package consultation implements the doctor's desk: opening a visit,
// recording the outcome and closing the appointment behind it.
package consultation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type PrescriptionInput struct {
	MedicineID   string `json:"medicineId"`
	MedicineName string `json:"medicineName"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
	Quantity     int    `json:"quantity"`
}

type TestInput struct {
	TestName     string  `json:"testName"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Instructions string  `json:"instructions"`
}

type SaveRequest struct {
	AppointmentID string              `json:"appointmentId"`
	Diagnosis     string              `json:"diagnosis"`
	Symptoms      []string            `json:"symptoms"`
	Notes         string              `json:"notes"`
	Prescriptions []PrescriptionInput `json:"prescriptions"`
	Tests         []TestInput         `json:"tests"`
	FollowUp      string              `json:"followUp"`
}

type UpdateRequest struct {
	Diagnosis *string   `json:"diagnosis"`
	Symptoms  *[]string `json:"symptoms"`
	Notes     *string   `json:"notes"`
	FollowUp  *string   `json:"followUp"`
}

type ListRequest struct {
	PatientID string
	DoctorID  string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// Start opens the visit: the appointment moves to In Progress and
	// becomes the current one.
	Start(ctx context.Context, appointmentID string) (*model.Appointment, error)
	// Save records the consultation and completes the appointment.
	Save(ctx context.Context, req SaveRequest) (*model.Consultation, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*model.Consultation, error)
	Get(ctx context.Context, id string) (*model.Consultation, error)
	List(ctx context.Context, req ListRequest) ([]model.Consultation, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type consultationService struct {
	st *store.Store
}

func New(st *store.Store) Service {
	return &consultationService{st: st}
}

func (s *consultationService) Start(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	appt, err := s.st.AppointmentByID(appointmentID)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrAppointmentClosed, appt.Status)
	}

	updated, err := s.st.UpdateAppointment(appointmentID, func(a *model.Appointment) {
		a.Status = model.AppointmentInProgress
	})
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	if p, err := s.st.PatientByID(updated.PatientID); err == nil {
		s.st.SetCurrentPatient(&p)
	}
	s.st.SetCurrentAppointment(&updated)
	return &updated, nil
}

func (s *consultationService) Save(ctx context.Context, req SaveRequest) (*model.Consultation, error) {
	if strings.TrimSpace(req.Diagnosis) == "" {
		return nil, ErrDiagnosisRequired
	}

	appt, err := s.st.AppointmentByID(req.AppointmentID)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrAppointmentClosed, appt.Status)
	}
	for _, c := range s.st.Consultations() {
		if c.AppointmentID == req.AppointmentID {
			return nil, ErrAlreadyConsulted
		}
	}

	doc, err := s.st.DoctorByID(appt.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor %s: %w", appt.DoctorID, err)
	}

	prescriptions := make([]model.Prescription, 0, len(req.Prescriptions))
	for i, in := range req.Prescriptions {
		if strings.TrimSpace(in.MedicineName) == "" && in.MedicineID == "" {
			return nil, fmt.Errorf("%w: entry %d has no medicine", ErrInvalidPrescription, i)
		}
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: entry %d quantity must be at least 1", ErrInvalidPrescription, i)
		}
		rx := model.Prescription{
			ID:           uuid.NewString(),
			MedicineID:   in.MedicineID,
			MedicineName: strings.TrimSpace(in.MedicineName),
			Dosage:       in.Dosage,
			Frequency:    in.Frequency,
			Duration:     in.Duration,
			Instructions: in.Instructions,
			Quantity:     in.Quantity,
		}
		// fill name and price from the catalog when the reference is exact
		if in.MedicineID != "" {
			if m, err := s.st.MedicineByID(in.MedicineID); err == nil {
				if rx.MedicineName == "" {
					rx.MedicineName = m.Name
				}
				rx.Price = m.Price
			}
		}
		prescriptions = append(prescriptions, rx)
	}

	tests := make([]model.Test, 0, len(req.Tests))
	for _, in := range req.Tests {
		tests = append(tests, model.Test{
			ID:           uuid.NewString(),
			TestName:     in.TestName,
			Category:     in.Category,
			Price:        in.Price,
			Instructions: in.Instructions,
		})
	}

	c := model.Consultation{
		ID:              uuid.NewString(),
		AppointmentID:   appt.ID,
		PatientID:       appt.PatientID,
		DoctorID:        appt.DoctorID,
		Diagnosis:       strings.TrimSpace(req.Diagnosis),
		Symptoms:        req.Symptoms,
		Notes:           req.Notes,
		Prescriptions:   prescriptions,
		Tests:           tests,
		FollowUp:        req.FollowUp,
		ConsultationFee: doc.ConsultationFee,
		CreatedAt:       time.Now(),
	}
	if err := s.st.AddConsultation(c); err != nil {
		return nil, fmt.Errorf("add consultation: %w", err)
	}

	if _, err := s.st.UpdateAppointment(appt.ID, func(a *model.Appointment) {
		a.Status = model.AppointmentCompleted
	}); err != nil {
		return nil, fmt.Errorf("complete appointment: %w", err)
	}
	return &c, nil
}

func (s *consultationService) Update(ctx context.Context, id string, req UpdateRequest) (*model.Consultation, error) {
	if req.Diagnosis != nil && strings.TrimSpace(*req.Diagnosis) == "" {
		return nil, ErrDiagnosisRequired
	}
	c, err := s.st.UpdateConsultation(id, func(c *model.Consultation) {
		if req.Diagnosis != nil {
			c.Diagnosis = strings.TrimSpace(*req.Diagnosis)
		}
		if req.Symptoms != nil {
			c.Symptoms = *req.Symptoms
		}
		if req.Notes != nil {
			c.Notes = *req.Notes
		}
		if req.FollowUp != nil {
			c.FollowUp = *req.FollowUp
		}
	})
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("update consultation: %w", err)
	}
	return &c, nil
}

func (s *consultationService) Get(ctx context.Context, id string) (*model.Consultation, error) {
	c, err := s.st.ConsultationByID(id)
	if err != nil {
		return nil, ErrConsultationNotFound
	}
	return &c, nil
}

func (s *consultationService) List(ctx context.Context, req ListRequest) ([]model.Consultation, error) {
	var out []model.Consultation
	for _, c := range s.st.Consultations() {
		if req.PatientID != "" && c.PatientID != req.PatientID {
			continue
		}
		if req.DoctorID != "" && c.DoctorID != req.DoctorID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
