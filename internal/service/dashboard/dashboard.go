// Package dashboard aggregates the front-desk overview numbers.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

const dateLayout = "2006-01-02"

// lowStockThreshold mirrors the pharmacy board's warning level.
const lowStockThreshold = 10

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Stats struct {
	TotalPatients      int     `json:"totalPatients"`
	TodayAppointments  int     `json:"todayAppointments"`
	TotalConsultations int     `json:"totalConsultations"`
	PendingBills       int     `json:"pendingBills"`
	LowStockMedicines  int     `json:"lowStockMedicines"`
	RevenueToday       float64 `json:"revenueToday"`
	RevenueTotal       float64 `json:"revenueTotal"`
}

// UpcomingEntry is one row of the "today's appointments" board.
type UpcomingEntry struct {
	model.Appointment
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	// Upcoming returns today's appointments ordered by time slot, capped
	// at limit (0 means all).
	Upcoming(ctx context.Context, limit int) ([]UpcomingEntry, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type dashboardService struct {
	st *store.Store
}

func New(st *store.Store) Service {
	return &dashboardService{st: st}
}

func (s *dashboardService) Stats(ctx context.Context) (*Stats, error) {
	today := time.Now().Format(dateLayout)

	stats := &Stats{
		TotalPatients:      len(s.st.Patients()),
		TotalConsultations: len(s.st.Consultations()),
	}
	for _, a := range s.st.Appointments() {
		if a.Date == today {
			stats.TodayAppointments++
		}
	}
	for _, b := range s.st.Bills() {
		if b.Status != model.BillPaid {
			stats.PendingBills++
		}
		stats.RevenueTotal += b.TotalAmount
		if b.CreatedAt.Format(dateLayout) == today {
			stats.RevenueToday += b.TotalAmount
		}
	}
	for _, m := range s.st.Medicines() {
		if m.Stock <= lowStockThreshold {
			stats.LowStockMedicines++
		}
	}
	return stats, nil
}

func (s *dashboardService) Upcoming(ctx context.Context, limit int) ([]UpcomingEntry, error) {
	today := time.Now().Format(dateLayout)

	var entries []UpcomingEntry
	for _, a := range s.st.Appointments() {
		if a.Date != today {
			continue
		}
		e := UpcomingEntry{Appointment: a}
		if p, err := s.st.PatientByID(a.PatientID); err == nil {
			e.PatientName = p.Name
		}
		if d, err := s.st.DoctorByID(a.DoctorID); err == nil {
			e.DoctorName = d.Name
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeSlot < entries[j].TimeSlot
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
