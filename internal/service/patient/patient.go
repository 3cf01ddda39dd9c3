// Package patient implements intake and the patient registry.
package patient

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

// defaultRegion seeds phone parsing for numbers entered without a country
// prefix.
const defaultRegion = "US"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Name             string            `json:"name"`
	Age              int               `json:"age"`
	Gender           model.Gender      `json:"gender"`
	Contact          string            `json:"contact"`
	Email            string            `json:"email"`
	Address          string            `json:"address"`
	Type             model.PatientType `json:"type"`
	EmergencyContact string            `json:"emergencyContact"`
	MedicalHistory   string            `json:"medicalHistory"`
}

type UpdateRequest struct {
	Name             *string            `json:"name"`
	Age              *int               `json:"age"`
	Gender           *model.Gender      `json:"gender"`
	Contact          *string            `json:"contact"`
	Email            *string            `json:"email"`
	Address          *string            `json:"address"`
	Type             *model.PatientType `json:"type"`
	EmergencyContact *string            `json:"emergencyContact"`
	MedicalHistory   *string            `json:"medicalHistory"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*model.Patient, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*model.Patient, error)
	Get(ctx context.Context, id string) (*model.Patient, error)
	List(ctx context.Context) ([]model.Patient, error)
	Search(ctx context.Context, query string) ([]model.Patient, error)
	AttachIDProof(ctx context.Context, id string, proof model.IDProof) (*model.Patient, error)

	// Select marks the patient as the one currently moving through the
	// visit pipeline. Current returns nil when nobody is selected.
	Select(ctx context.Context, id string) (*model.Patient, error)
	Current(ctx context.Context) *model.Patient
	ClearCurrent(ctx context.Context)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	st *store.Store
}

func New(st *store.Store) Service {
	return &patientService{st: st}
}

func (s *patientService) Register(ctx context.Context, req RegisterRequest) (*model.Patient, error) {
	// All validation happens before the store is touched; a rejected
	// intake leaves no partial record behind.
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Age < 1 {
		return nil, ErrInvalidAge
	}
	contact := strings.TrimSpace(req.Contact)
	if contact == "" {
		return nil, ErrContactRequired
	}
	switch req.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return nil, ErrInvalidGender
	}
	email := strings.TrimSpace(req.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	ptype := req.Type
	if ptype == "" {
		ptype = model.PatientGeneral
	}

	p := model.Patient{
		ID:               uuid.NewString(),
		Name:             name,
		Age:              req.Age,
		Gender:           req.Gender,
		Contact:          normalizeContact(contact),
		Email:            email,
		Address:          strings.TrimSpace(req.Address),
		Type:             ptype,
		EmergencyContact: normalizeContact(strings.TrimSpace(req.EmergencyContact)),
		MedicalHistory:   req.MedicalHistory,
		CreatedAt:        time.Now(),
	}
	if err := s.st.AddPatient(p); err != nil {
		return nil, fmt.Errorf("add patient: %w", err)
	}
	return &p, nil
}

func (s *patientService) Update(ctx context.Context, id string, req UpdateRequest) (*model.Patient, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, ErrNameRequired
	}
	if req.Age != nil && *req.Age < 1 {
		return nil, ErrInvalidAge
	}
	if req.Contact != nil && strings.TrimSpace(*req.Contact) == "" {
		return nil, ErrContactRequired
	}
	if req.Gender != nil {
		switch *req.Gender {
		case model.GenderMale, model.GenderFemale, model.GenderOther:
		default:
			return nil, ErrInvalidGender
		}
	}
	if req.Email != nil && *req.Email != "" {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return nil, ErrInvalidEmail
		}
	}

	p, err := s.st.UpdatePatient(id, func(p *model.Patient) {
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Age != nil {
			p.Age = *req.Age
		}
		if req.Gender != nil {
			p.Gender = *req.Gender
		}
		if req.Contact != nil {
			p.Contact = normalizeContact(strings.TrimSpace(*req.Contact))
		}
		if req.Email != nil {
			p.Email = strings.TrimSpace(*req.Email)
		}
		if req.Address != nil {
			p.Address = strings.TrimSpace(*req.Address)
		}
		if req.Type != nil {
			p.Type = *req.Type
		}
		if req.EmergencyContact != nil {
			p.EmergencyContact = normalizeContact(strings.TrimSpace(*req.EmergencyContact))
		}
		if req.MedicalHistory != nil {
			p.MedicalHistory = *req.MedicalHistory
		}
	})
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return &p, nil
}

func (s *patientService) Get(ctx context.Context, id string) (*model.Patient, error) {
	p, err := s.st.PatientByID(id)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (s *patientService) List(ctx context.Context) ([]model.Patient, error) {
	return s.st.Patients(), nil
}

func (s *patientService) Search(ctx context.Context, query string) ([]model.Patient, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.st.Patients(), nil
	}

	var out []model.Patient
	for _, p := range s.st.Patients() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Contact), q) ||
			strings.EqualFold(p.ID, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *patientService) AttachIDProof(ctx context.Context, id string, proof model.IDProof) (*model.Patient, error) {
	if len(proof.Data) == 0 {
		return nil, ErrEmptyIDProof
	}
	p, err := s.st.UpdatePatient(id, func(p *model.Patient) {
		p.IDProof = &proof
	})
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("attach id proof: %w", err)
	}
	return &p, nil
}

func (s *patientService) Select(ctx context.Context, id string) (*model.Patient, error) {
	p, err := s.st.PatientByID(id)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	s.st.SetCurrentPatient(&p)
	return &p, nil
}

func (s *patientService) Current(ctx context.Context) *model.Patient {
	return s.st.CurrentPatient()
}

func (s *patientService) ClearCurrent(ctx context.Context) {
	s.st.SetCurrentPatient(nil)
	s.st.SetCurrentAppointment(nil)
}

// normalizeContact formats a phone number to E.164 when it parses; numbers
// that do not parse are stored as typed.
func normalizeContact(raw string) string {
	if raw == "" {
		return raw
	}
	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
