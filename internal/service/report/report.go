// Package report builds the read-only listings behind the reports screen
// and their downloadable exports.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
	"github.com/clinicdesk/clinicdesk_backend/pkg/docgen"
)

const dateLayout = "2006-01-02"

// Report names accepted by Export.
const (
	ReportPatients      = "patients"
	ReportConsultations = "consultations"
	ReportAppointments  = "appointments"
	ReportFinancial     = "financial"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// Filter narrows a report. Name matches the patient name, case-insensitive
// substring. From and To are inclusive "2006-01-02" bounds; either may be
// empty.
type Filter struct {
	Name string
	From string
	To   string
}

type ConsultationRow struct {
	model.Consultation
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

type AppointmentRow struct {
	model.Appointment
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

type FinancialRow struct {
	model.Bill
	PatientName string `json:"patientName"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Patients(ctx context.Context, f Filter) ([]model.Patient, error)
	Consultations(ctx context.Context, f Filter) ([]ConsultationRow, error)
	Appointments(ctx context.Context, f Filter) ([]AppointmentRow, error)
	Financial(ctx context.Context, f Filter) ([]FinancialRow, error)
	// Export renders one of the reports as a downloadable document.
	// Format is "csv" or "pdf"; pdf surfaces docgen.ErrUnsupported.
	Export(ctx context.Context, name, format string, f Filter) (*docgen.Document, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type reportService struct {
	st  *store.Store
	csv docgen.Generator
	pdf docgen.Generator
}

func New(st *store.Store) Service {
	return &reportService{
		st:  st,
		csv: docgen.NewCSV(),
		pdf: docgen.NewPDF(),
	}
}

func (s *reportService) Patients(ctx context.Context, f Filter) ([]model.Patient, error) {
	rng, err := f.dateRange()
	if err != nil {
		return nil, err
	}
	var out []model.Patient
	for _, p := range s.st.Patients() {
		if !f.matchName(p.Name) {
			continue
		}
		if !rng.containsTime(p.CreatedAt) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *reportService) Consultations(ctx context.Context, f Filter) ([]ConsultationRow, error) {
	rng, err := f.dateRange()
	if err != nil {
		return nil, err
	}
	var out []ConsultationRow
	for _, c := range s.st.Consultations() {
		row := ConsultationRow{Consultation: c}
		if p, err := s.st.PatientByID(c.PatientID); err == nil {
			row.PatientName = p.Name
		}
		if d, err := s.st.DoctorByID(c.DoctorID); err == nil {
			row.DoctorName = d.Name
		}
		if !f.matchName(row.PatientName) {
			continue
		}
		if !rng.containsTime(c.CreatedAt) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *reportService) Appointments(ctx context.Context, f Filter) ([]AppointmentRow, error) {
	rng, err := f.dateRange()
	if err != nil {
		return nil, err
	}
	var out []AppointmentRow
	for _, a := range s.st.Appointments() {
		row := AppointmentRow{Appointment: a}
		if p, err := s.st.PatientByID(a.PatientID); err == nil {
			row.PatientName = p.Name
		}
		if d, err := s.st.DoctorByID(a.DoctorID); err == nil {
			row.DoctorName = d.Name
		}
		if !f.matchName(row.PatientName) {
			continue
		}
		if !rng.containsDate(a.Date) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *reportService) Financial(ctx context.Context, f Filter) ([]FinancialRow, error) {
	rng, err := f.dateRange()
	if err != nil {
		return nil, err
	}
	var out []FinancialRow
	for _, b := range s.st.Bills() {
		row := FinancialRow{Bill: b}
		if p, err := s.st.PatientByID(b.PatientID); err == nil {
			row.PatientName = p.Name
		}
		if !f.matchName(row.PatientName) {
			continue
		}
		if !rng.containsTime(b.CreatedAt) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *reportService) Export(ctx context.Context, name, format string, f Filter) (*docgen.Document, error) {
	var gen docgen.Generator
	switch format {
	case "csv":
		gen = s.csv
	case "pdf":
		gen = s.pdf
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	table, err := s.table(ctx, name, f)
	if err != nil {
		return nil, err
	}
	return gen.Generate(*table)
}

func (s *reportService) table(ctx context.Context, name string, f Filter) (*docgen.Table, error) {
	switch name {
	case ReportPatients:
		rows, err := s.Patients(ctx, f)
		if err != nil {
			return nil, err
		}
		t := &docgen.Table{
			Name:    ReportPatients,
			Headers: []string{"ID", "Name", "Age", "Gender", "Contact", "Type", "Registered"},
		}
		for _, p := range rows {
			t.Rows = append(t.Rows, []string{
				p.ID, p.Name, strconv.Itoa(p.Age), string(p.Gender),
				p.Contact, string(p.Type), p.CreatedAt.Format(dateLayout),
			})
		}
		return t, nil

	case ReportConsultations:
		rows, err := s.Consultations(ctx, f)
		if err != nil {
			return nil, err
		}
		t := &docgen.Table{
			Name:    ReportConsultations,
			Headers: []string{"ID", "Patient", "Doctor", "Diagnosis", "Prescriptions", "Fee", "Date"},
		}
		for _, c := range rows {
			t.Rows = append(t.Rows, []string{
				c.ID, c.PatientName, c.DoctorName, c.Diagnosis,
				strconv.Itoa(len(c.Prescriptions)),
				money(c.ConsultationFee), c.CreatedAt.Format(dateLayout),
			})
		}
		return t, nil

	case ReportAppointments:
		rows, err := s.Appointments(ctx, f)
		if err != nil {
			return nil, err
		}
		t := &docgen.Table{
			Name:    ReportAppointments,
			Headers: []string{"ID", "Patient", "Doctor", "Date", "Slot", "Status", "Priority"},
		}
		for _, a := range rows {
			t.Rows = append(t.Rows, []string{
				a.ID, a.PatientName, a.DoctorName, a.Date, a.TimeSlot,
				string(a.Status), string(a.Priority),
			})
		}
		return t, nil

	case ReportFinancial:
		rows, err := s.Financial(ctx, f)
		if err != nil {
			return nil, err
		}
		t := &docgen.Table{
			Name:    ReportFinancial,
			Headers: []string{"ID", "Patient", "Total", "Paid", "Balance", "Status", "Method", "Date"},
		}
		for _, b := range rows {
			t.Rows = append(t.Rows, []string{
				b.ID, b.PatientName, money(b.TotalAmount), money(b.PaidAmount),
				money(b.Balance()), string(b.Status), string(b.PaymentMethod),
				b.CreatedAt.Format(dateLayout),
			})
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// ---------------------------------------------------------------------------
// Filtering
// ---------------------------------------------------------------------------

type dateRange struct {
	from, to time.Time
	hasFrom  bool
	hasTo    bool
}

func (f Filter) dateRange() (dateRange, error) {
	var r dateRange
	var err error
	if f.From != "" {
		r.from, err = time.Parse(dateLayout, f.From)
		if err != nil {
			return r, fmt.Errorf("%w: from %q", ErrInvalidRange, f.From)
		}
		r.hasFrom = true
	}
	if f.To != "" {
		r.to, err = time.Parse(dateLayout, f.To)
		if err != nil {
			return r, fmt.Errorf("%w: to %q", ErrInvalidRange, f.To)
		}
		r.hasTo = true
	}
	if r.hasFrom && r.hasTo && r.to.Before(r.from) {
		return r, fmt.Errorf("%w: %s after %s", ErrInvalidRange, f.From, f.To)
	}
	return r, nil
}

func (r dateRange) containsDate(date string) bool {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	if r.hasFrom && d.Before(r.from) {
		return false
	}
	if r.hasTo && d.After(r.to) {
		return false
	}
	return true
}

func (r dateRange) containsTime(t time.Time) bool {
	return r.containsDate(t.Format(dateLayout))
}

func (f Filter) matchName(name string) bool {
	q := strings.TrimSpace(f.Name)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(q))
}
