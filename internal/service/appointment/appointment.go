// Package appointment implements booking, the daily visit queue and the
// appointment status lifecycle.
package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	slotMinutes = 30
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type BookRequest struct {
	PatientID string                    `json:"patientId"`
	DoctorID  string                    `json:"doctorId"`
	Date      string                    `json:"date"`
	TimeSlot  string                    `json:"timeSlot"`
	Reason    string                    `json:"reason"`
	Priority  model.AppointmentPriority `json:"priority"`
}

type ListRequest struct {
	PatientID string
	DoctorID  string
	Date      string
	Status    model.AppointmentStatus
}

// Slot is one bookable 30-minute window.
type Slot struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

// QueueEntry joins an appointment with the names the queue board shows.
type QueueEntry struct {
	model.Appointment
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Book(ctx context.Context, req BookRequest) (*model.Appointment, error)
	Get(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context, req ListRequest) ([]model.Appointment, error)
	TodayQueue(ctx context.Context) ([]QueueEntry, error)
	Slots(ctx context.Context, doctorID, date string) ([]Slot, error)

	Start(ctx context.Context, id string) (*model.Appointment, error)
	Complete(ctx context.Context, id string) (*model.Appointment, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
	MarkNoShow(ctx context.Context, id string) (*model.Appointment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	st *store.Store
}

func New(st *store.Store) Service {
	return &appointmentService{st: st}
}

func (s *appointmentService) Book(ctx context.Context, req BookRequest) (*model.Appointment, error) {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if strings.TrimSpace(req.TimeSlot) == "" {
		return nil, ErrSlotRequired
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}
	switch priority {
	case model.PriorityNormal, model.PriorityUrgent, model.PriorityEmergency:
	default:
		return nil, ErrInvalidPriority
	}

	patient, err := s.st.PatientByID(req.PatientID)
	if err != nil {
		return nil, ErrPatientNotFound
	}
	if _, err := s.st.DoctorByID(req.DoctorID); err != nil {
		return nil, ErrDoctorNotFound
	}

	for _, a := range s.st.Appointments() {
		if a.DoctorID == req.DoctorID && a.Date == req.Date &&
			a.TimeSlot == req.TimeSlot && a.Status != model.AppointmentCancelled {
			return nil, ErrSlotTaken
		}
	}

	appt := model.Appointment{
		ID:        uuid.NewString(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    model.AppointmentScheduled,
		Priority:  priority,
		CreatedAt: time.Now(),
	}
	if err := s.st.AddAppointment(appt); err != nil {
		return nil, fmt.Errorf("add appointment: %w", err)
	}

	// Booking hands the baton to the queue step.
	s.st.SetCurrentPatient(&patient)
	s.st.SetCurrentAppointment(&appt)
	return &appt, nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := s.st.AppointmentByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (s *appointmentService) List(ctx context.Context, req ListRequest) ([]model.Appointment, error) {
	var out []model.Appointment
	for _, a := range s.st.Appointments() {
		if req.PatientID != "" && a.PatientID != req.PatientID {
			continue
		}
		if req.DoctorID != "" && a.DoctorID != req.DoctorID {
			continue
		}
		if req.Date != "" && a.Date != req.Date {
			continue
		}
		if req.Status != "" && a.Status != req.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *appointmentService) TodayQueue(ctx context.Context) ([]QueueEntry, error) {
	today := time.Now().Format(dateLayout)

	var entries []QueueEntry
	for _, a := range s.st.Appointments() {
		if a.Date != today {
			continue
		}
		e := QueueEntry{Appointment: a}
		if p, err := s.st.PatientByID(a.PatientID); err == nil {
			e.PatientName = p.Name
		}
		if d, err := s.st.DoctorByID(a.DoctorID); err == nil {
			e.DoctorName = d.Name
		}
		entries = append(entries, e)
	}
	// stable keeps insertion order for identical slots
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeSlot < entries[j].TimeSlot
	})
	return entries, nil
}

func (s *appointmentService) Slots(ctx context.Context, doctorID, date string) ([]Slot, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	doc, err := s.st.DoctorByID(doctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	booked := make(map[string]bool)
	for _, a := range s.st.Appointments() {
		if a.DoctorID == doctorID && a.Date == date && a.Status != model.AppointmentCancelled {
			booked[a.TimeSlot] = true
		}
	}

	var slots []Slot
	for _, window := range doc.Availability {
		if window.Date != date || !window.IsAvailable {
			continue
		}
		start, err := time.Parse(timeLayout, window.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(timeLayout, window.EndTime)
		if err != nil {
			continue
		}
		for t := start; !t.Add(slotMinutes * time.Minute).After(end); t = t.Add(slotMinutes * time.Minute) {
			label := t.Format(timeLayout) + "-" + t.Add(slotMinutes*time.Minute).Format(timeLayout)
			slots = append(slots, Slot{Slot: label, Available: !booked[label]})
		}
	}
	return slots, nil
}

// ---------------------------------------------------------------------------
// Status lifecycle
// ---------------------------------------------------------------------------

func (s *appointmentService) Start(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(id, model.AppointmentInProgress, model.AppointmentScheduled)
}

func (s *appointmentService) Complete(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(id, model.AppointmentCompleted,
		model.AppointmentScheduled, model.AppointmentInProgress)
}

func (s *appointmentService) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(id, model.AppointmentCancelled,
		model.AppointmentScheduled, model.AppointmentInProgress)
}

func (s *appointmentService) MarkNoShow(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(id, model.AppointmentNoShow,
		model.AppointmentScheduled, model.AppointmentInProgress)
}

func (s *appointmentService) transition(id string, to model.AppointmentStatus, from ...model.AppointmentStatus) (*model.Appointment, error) {
	current, err := s.st.AppointmentByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrTerminalState, current.Status)
	}
	allowed := false
	for _, f := range from {
		if current.Status == f {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	a, err := s.st.UpdateAppointment(id, func(a *model.Appointment) {
		a.Status = to
	})
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return &a, nil
}
