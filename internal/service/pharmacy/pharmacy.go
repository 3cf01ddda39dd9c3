// Package pharmacy implements the dispensing counter: the prescription
// queue, catalog lookups and turning a consultation's prescriptions into a
// medicine bill.
package pharmacy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
	"github.com/clinicdesk/clinicdesk_backend/pkg/reqctx"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// QueueEntry is one consultation waiting at (or already served by) the
// counter.
type QueueEntry struct {
	model.Consultation
	PatientName string `json:"patientName"`
	// Pending is false once a medicine bill references the consultation.
	Pending bool `json:"pending"`
}

// DispenseItem overrides the dispensed quantity for one prescription.
// Prescriptions not listed are dispensed at their prescribed quantity.
type DispenseItem struct {
	PrescriptionID string `json:"prescriptionId"`
	Quantity       int    `json:"quantity"`
}

type DispenseRequest struct {
	ConsultationID string         `json:"consultationId"`
	Items          []DispenseItem `json:"items"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Queue(ctx context.Context) ([]QueueEntry, error)
	Medicines(ctx context.Context) ([]model.Medicine, error)
	// ResolveMedicine finds a catalog entry by id, then exact name, then
	// first substring match.
	ResolveMedicine(ctx context.Context, id, name string) (*model.Medicine, error)
	// Dispense decrements stock and raises the medicine bill.
	Dispense(ctx context.Context, req DispenseRequest) (*model.Bill, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type pharmacyService struct {
	st *store.Store
}

func New(st *store.Store) Service {
	return &pharmacyService{st: st}
}

func (s *pharmacyService) Queue(ctx context.Context) ([]QueueEntry, error) {
	billed := make(map[string]bool)
	for _, b := range s.st.Bills() {
		if b.ConsultationID != "" && b.MedicineCharges > 0 {
			billed[b.ConsultationID] = true
		}
	}

	var out []QueueEntry
	for _, c := range s.st.Consultations() {
		if len(c.Prescriptions) == 0 {
			continue
		}
		e := QueueEntry{Consultation: c, Pending: !billed[c.ID]}
		if p, err := s.st.PatientByID(c.PatientID); err == nil {
			e.PatientName = p.Name
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *pharmacyService) Medicines(ctx context.Context) ([]model.Medicine, error) {
	return s.st.Medicines(), nil
}

func (s *pharmacyService) ResolveMedicine(ctx context.Context, id, name string) (*model.Medicine, error) {
	if id != "" {
		if m, err := s.st.MedicineByID(id); err == nil {
			return &m, nil
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMedicineNotFound
	}
	catalog := s.st.Medicines()
	for _, m := range catalog {
		if strings.EqualFold(m.Name, name) {
			return &m, nil
		}
	}
	lower := strings.ToLower(name)
	for _, m := range catalog {
		if strings.Contains(strings.ToLower(m.Name), lower) {
			return &m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMedicineNotFound, name)
}

func (s *pharmacyService) Dispense(ctx context.Context, req DispenseRequest) (*model.Bill, error) {
	c, err := s.st.ConsultationByID(req.ConsultationID)
	if err != nil {
		return nil, ErrConsultationNotFound
	}
	if len(c.Prescriptions) == 0 {
		return nil, ErrNothingToDispense
	}
	for _, b := range s.st.Bills() {
		if b.ConsultationID == c.ID && b.MedicineCharges > 0 {
			return nil, ErrAlreadyDispensed
		}
	}

	overrides := make(map[string]int, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: prescription %s", ErrInvalidQuantity, item.PrescriptionID)
		}
		overrides[item.PrescriptionID] = item.Quantity
	}

	type line struct {
		medicineID string
		quantity   int
		price      float64
	}
	var lines []line
	for _, rx := range c.Prescriptions {
		qty := rx.Quantity
		if q, ok := overrides[rx.ID]; ok {
			qty = q
		}
		m, err := s.ResolveMedicine(ctx, rx.MedicineID, rx.MedicineName)
		if err != nil {
			return nil, err
		}
		if m.Stock < qty {
			return nil, fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientStock, m.Name, m.Stock, qty)
		}
		lines = append(lines, line{medicineID: m.ID, quantity: qty, price: m.Price})
	}

	// Decrement after every line checked out. A concurrent dispense can
	// still win a race on one medicine, so roll back on failure.
	var done []line
	for _, l := range lines {
		if _, err := s.st.AdjustMedicineStock(l.medicineID, -l.quantity); err != nil {
			for _, u := range done {
				_, _ = s.st.AdjustMedicineStock(u.medicineID, u.quantity)
			}
			return nil, fmt.Errorf("dispense %s: %w", l.medicineID, err)
		}
		done = append(done, l)
	}

	var charges float64
	for _, l := range lines {
		charges += l.price * float64(l.quantity)
	}

	bill := model.Bill{
		ID:              uuid.NewString(),
		PatientID:       c.PatientID,
		ConsultationID:  c.ID,
		ConsultationFee: 0, // settled at the consultation desk
		MedicineCharges: charges,
		TestCharges:     0,
		TotalAmount:     charges,
		PaidAmount:      0,
		Status:          model.BillPending,
		CreatedAt:       time.Now(),
	}
	if err := s.st.AddBill(bill); err != nil {
		for _, u := range done {
			_, _ = s.st.AdjustMedicineStock(u.medicineID, u.quantity)
		}
		return nil, fmt.Errorf("add bill: %w", err)
	}

	slog.Info("prescriptions dispensed",
		"req_id", reqctx.RequestIDFromContext(ctx),
		"consultation", c.ID,
		"bill", bill.ID,
		"lines", len(lines),
		"charges", charges,
	)
	return &bill, nil
}
