// Package store is the single source of truth for clinic state. Everything
// lives in process memory behind one mutex; a restart starts from the seed
// again. Insertion order is list order, and all reads hand out snapshot
// copies so callers never alias the guarded slices.
package store

import (
	"sync"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
)

type Store struct {
	mu sync.RWMutex

	patients      []model.Patient
	appointments  []model.Appointment
	consultations []model.Consultation
	bills         []model.Bill

	patientIdx      map[string]int
	appointmentIdx  map[string]int
	consultationIdx map[string]int
	billIdx         map[string]int

	doctors     []model.Doctor
	medicines   []model.Medicine
	doctorIdx   map[string]int
	medicineIdx map[string]int

	currentPatient     *model.Patient
	currentAppointment *model.Appointment
}

func New() *Store {
	return &Store{
		patientIdx:      make(map[string]int),
		appointmentIdx:  make(map[string]int),
		consultationIdx: make(map[string]int),
		billIdx:         make(map[string]int),
		doctorIdx:       make(map[string]int),
		medicineIdx:     make(map[string]int),
	}
}

// Seed installs the doctor and medicine catalogs. It replaces whatever was
// there before; fixtures call it exactly once at startup.
func (s *Store) Seed(doctors []model.Doctor, medicines []model.Medicine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docIdx := make(map[string]int, len(doctors))
	for i, d := range doctors {
		if d.ID == "" {
			return ErrEmptyID
		}
		if _, ok := docIdx[d.ID]; ok {
			return ErrDuplicateID
		}
		docIdx[d.ID] = i
	}
	medIdx := make(map[string]int, len(medicines))
	for i, m := range medicines {
		if m.ID == "" {
			return ErrEmptyID
		}
		if _, ok := medIdx[m.ID]; ok {
			return ErrDuplicateID
		}
		medIdx[m.ID] = i
	}

	s.doctors = append([]model.Doctor(nil), doctors...)
	s.medicines = append([]model.Medicine(nil), medicines...)
	s.doctorIdx = docIdx
	s.medicineIdx = medIdx
	return nil
}

// ---------------------------------------------------------------------------
// Patients
// ---------------------------------------------------------------------------

func (s *Store) AddPatient(p model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.patientIdx[p.ID]; ok {
		return ErrDuplicateID
	}
	s.patientIdx[p.ID] = len(s.patients)
	s.patients = append(s.patients, p)
	return nil
}

// UpdatePatient applies fn to the stored record under the write lock and
// returns the updated copy. fn must not change the ID.
func (s *Store) UpdatePatient(id string, fn func(*model.Patient)) (model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.patientIdx[id]
	if !ok {
		return model.Patient{}, ErrNotFound
	}
	fn(&s.patients[i])
	s.patients[i].ID = id
	return s.patients[i], nil
}

func (s *Store) Patients() []model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Patient(nil), s.patients...)
}

func (s *Store) PatientByID(id string) (model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.patientIdx[id]
	if !ok {
		return model.Patient{}, ErrNotFound
	}
	return s.patients[i], nil
}

// ---------------------------------------------------------------------------
// Appointments
// ---------------------------------------------------------------------------

func (s *Store) AddAppointment(a model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.appointmentIdx[a.ID]; ok {
		return ErrDuplicateID
	}
	s.appointmentIdx[a.ID] = len(s.appointments)
	s.appointments = append(s.appointments, a)
	return nil
}

func (s *Store) UpdateAppointment(id string, fn func(*model.Appointment)) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.appointmentIdx[id]
	if !ok {
		return model.Appointment{}, ErrNotFound
	}
	fn(&s.appointments[i])
	s.appointments[i].ID = id
	return s.appointments[i], nil
}

func (s *Store) Appointments() []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Appointment(nil), s.appointments...)
}

func (s *Store) AppointmentByID(id string) (model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.appointmentIdx[id]
	if !ok {
		return model.Appointment{}, ErrNotFound
	}
	return s.appointments[i], nil
}

// ---------------------------------------------------------------------------
// Consultations
// ---------------------------------------------------------------------------

func (s *Store) AddConsultation(c model.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.consultationIdx[c.ID]; ok {
		return ErrDuplicateID
	}
	s.consultationIdx[c.ID] = len(s.consultations)
	s.consultations = append(s.consultations, c)
	return nil
}

func (s *Store) UpdateConsultation(id string, fn func(*model.Consultation)) (model.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.consultationIdx[id]
	if !ok {
		return model.Consultation{}, ErrNotFound
	}
	fn(&s.consultations[i])
	s.consultations[i].ID = id
	return s.consultations[i], nil
}

func (s *Store) Consultations() []model.Consultation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Consultation(nil), s.consultations...)
}

func (s *Store) ConsultationByID(id string) (model.Consultation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.consultationIdx[id]
	if !ok {
		return model.Consultation{}, ErrNotFound
	}
	return s.consultations[i], nil
}

// ---------------------------------------------------------------------------
// Bills
// ---------------------------------------------------------------------------

func (s *Store) AddBill(b model.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		return ErrEmptyID
	}
	if _, ok := s.billIdx[b.ID]; ok {
		return ErrDuplicateID
	}
	s.billIdx[b.ID] = len(s.bills)
	s.bills = append(s.bills, b)
	return nil
}

func (s *Store) UpdateBill(id string, fn func(*model.Bill)) (model.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.billIdx[id]
	if !ok {
		return model.Bill{}, ErrNotFound
	}
	fn(&s.bills[i])
	s.bills[i].ID = id
	return s.bills[i], nil
}

func (s *Store) Bills() []model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Bill(nil), s.bills...)
}

func (s *Store) BillByID(id string) (model.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.billIdx[id]
	if !ok {
		return model.Bill{}, ErrNotFound
	}
	return s.bills[i], nil
}

// ---------------------------------------------------------------------------
// Catalogs
// ---------------------------------------------------------------------------

func (s *Store) Doctors() []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Doctor(nil), s.doctors...)
}

func (s *Store) DoctorByID(id string) (model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.doctorIdx[id]
	if !ok {
		return model.Doctor{}, ErrNotFound
	}
	return s.doctors[i], nil
}

func (s *Store) Medicines() []model.Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Medicine(nil), s.medicines...)
}

func (s *Store) MedicineByID(id string) (model.Medicine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.medicineIdx[id]
	if !ok {
		return model.Medicine{}, ErrNotFound
	}
	return s.medicines[i], nil
}

// AdjustMedicineStock moves the stock level by delta (negative for a
// dispense) and rejects any change that would take stock below zero.
func (s *Store) AdjustMedicineStock(id string, delta int) (model.Medicine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.medicineIdx[id]
	if !ok {
		return model.Medicine{}, ErrNotFound
	}
	next := s.medicines[i].Stock + delta
	if next < 0 {
		return model.Medicine{}, ErrInsufficientStock
	}
	s.medicines[i].Stock = next
	return s.medicines[i], nil
}

// ---------------------------------------------------------------------------
// Workflow baton
// ---------------------------------------------------------------------------

// SetCurrentPatient records which patient the front desk is walking through
// the pipeline. Pass nil to clear the slot.
func (s *Store) SetCurrentPatient(p *model.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil {
		s.currentPatient = nil
		return
	}
	cp := *p
	s.currentPatient = &cp
}

func (s *Store) CurrentPatient() *model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentPatient == nil {
		return nil
	}
	cp := *s.currentPatient
	return &cp
}

func (s *Store) SetCurrentAppointment(a *model.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a == nil {
		s.currentAppointment = nil
		return
	}
	ca := *a
	s.currentAppointment = &ca
}

func (s *Store) CurrentAppointment() *model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentAppointment == nil {
		return nil
	}
	ca := *s.currentAppointment
	return &ca
}

// Counts returns the list sizes in one lock acquisition. The metrics
// sampler polls this.
func (s *Store) Counts() (patients, appointments, consultations, bills int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patients), len(s.appointments), len(s.consultations), len(s.bills)
}
