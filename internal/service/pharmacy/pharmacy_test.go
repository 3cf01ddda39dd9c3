package pharmacy

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicdesk/clinicdesk_backend/internal/fixtures"
	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/consultation"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	seed, err := fixtures.Load()
	if err != nil {
		t.Fatal(err)
	}
	st := store.New()
	if err := fixtures.Apply(st, seed); err != nil {
		t.Fatal(err)
	}
	return st
}

// saveConsultation records a consultation with one Lisinopril prescription
// against demo appointment "1".
func saveConsultation(t *testing.T, st *store.Store, qty int) *model.Consultation {
	t.Helper()
	c, err := consultation.New(st).Save(context.Background(), consultation.SaveRequest{
		AppointmentID: "1",
		Diagnosis:     "Hypertension",
		Prescriptions: []consultation.PrescriptionInput{{
			MedicineID: "3",
			Dosage:     "10mg",
			Frequency:  "Once daily",
			Duration:   "30 days",
			Quantity:   qty,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestResolveMedicine(t *testing.T) {
	svc := New(seededStore(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		id     string
		query  string
		wantID string
	}{
		{"by id", "3", "", "3"},
		{"by exact name", "", "Lisinopril 10mg", "3"},
		{"exact name case-insensitive", "", "lisinopril 10MG", "3"},
		{"by substring", "", "amoxicillin", "2"},
		{"id wins over name", "1", "Metformin 500mg", "1"},
		{"bad id falls back to name", "404", "Metformin 500mg", "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := svc.ResolveMedicine(ctx, tt.id, tt.query)
			if err != nil {
				t.Fatalf("ResolveMedicine() error = %v", err)
			}
			if m.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", m.ID, tt.wantID)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := svc.ResolveMedicine(ctx, "", "Unobtainium")
		if !errors.Is(err, ErrMedicineNotFound) {
			t.Errorf("error = %v, want ErrMedicineNotFound", err)
		}
	})
}

func TestQueue(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()
	c := saveConsultation(t, st, 30)

	entries, err := svc.Queue(ctx)
	if err != nil {
		t.Fatalf("Queue() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if !entries[0].Pending {
		t.Error("undispensed consultation not pending")
	}
	if entries[0].PatientName != "John Doe" {
		t.Errorf("PatientName = %q", entries[0].PatientName)
	}

	t.Run("dispensed entries flip to completed", func(t *testing.T) {
		if _, err := svc.Dispense(ctx, DispenseRequest{ConsultationID: c.ID}); err != nil {
			t.Fatal(err)
		}
		entries, err := svc.Queue(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Fatalf("len = %d, want 1", len(entries))
		}
		if entries[0].Pending {
			t.Error("dispensed consultation still pending")
		}
	})

	t.Run("prescription-free consultations never queue", func(t *testing.T) {
		if _, err := consultation.New(st).Save(ctx, consultation.SaveRequest{
			AppointmentID: "2",
			Diagnosis:     "Sprain, rest only",
		}); err != nil {
			t.Fatal(err)
		}
		entries, err := svc.Queue(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("len = %d, want 1", len(entries))
		}
	})
}

func TestDispense(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()
	c := saveConsultation(t, st, 30)

	bill, err := svc.Dispense(ctx, DispenseRequest{ConsultationID: c.ID})
	if err != nil {
		t.Fatalf("Dispense() error = %v", err)
	}

	// 30 x 15.5 for Lisinopril 10mg
	if bill.MedicineCharges != 465.0 {
		t.Errorf("MedicineCharges = %v, want 465.0", bill.MedicineCharges)
	}
	if bill.TotalAmount != 465.0 {
		t.Errorf("TotalAmount = %v, want 465.0", bill.TotalAmount)
	}
	if bill.ConsultationFee != 0 || bill.TestCharges != 0 {
		t.Errorf("fee = %v, tests = %v, want 0 and 0", bill.ConsultationFee, bill.TestCharges)
	}
	if bill.Status != model.BillPending || bill.PaidAmount != 0 {
		t.Errorf("status = %q paid = %v", bill.Status, bill.PaidAmount)
	}
	if bill.ConsultationID != c.ID || bill.PatientID != "1" {
		t.Errorf("links = %q / %q", bill.ConsultationID, bill.PatientID)
	}

	m, err := st.MedicineByID("3")
	if err != nil {
		t.Fatal(err)
	}
	if m.Stock != 120 {
		t.Errorf("stock = %d, want 120 after dispensing 30 of 150", m.Stock)
	}

	t.Run("double dispense rejected", func(t *testing.T) {
		_, err := svc.Dispense(ctx, DispenseRequest{ConsultationID: c.ID})
		if !errors.Is(err, ErrAlreadyDispensed) {
			t.Errorf("error = %v, want ErrAlreadyDispensed", err)
		}
		m, _ := st.MedicineByID("3")
		if m.Stock != 120 {
			t.Errorf("stock moved on rejected dispense: %d", m.Stock)
		}
	})
}

func TestDispenseStockGuard(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()
	c := saveConsultation(t, st, 151) // catalog holds 150

	_, err := svc.Dispense(ctx, DispenseRequest{ConsultationID: c.ID})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("error = %v, want ErrInsufficientStock", err)
	}

	m, _ := st.MedicineByID("3")
	if m.Stock != 150 {
		t.Errorf("stock = %d, want untouched 150", m.Stock)
	}
	if n := len(st.Bills()); n != 0 {
		t.Errorf("%d bills raised on failed dispense", n)
	}

	t.Run("quantity override", func(t *testing.T) {
		bill, err := svc.Dispense(ctx, DispenseRequest{
			ConsultationID: c.ID,
			Items:          []DispenseItem{{PrescriptionID: c.Prescriptions[0].ID, Quantity: 10}},
		})
		if err != nil {
			t.Fatalf("Dispense() error = %v", err)
		}
		if bill.TotalAmount != 155.0 {
			t.Errorf("TotalAmount = %v, want 155.0", bill.TotalAmount)
		}
		m, _ := st.MedicineByID("3")
		if m.Stock != 140 {
			t.Errorf("stock = %d, want 140", m.Stock)
		}
	})

	t.Run("zero override rejected", func(t *testing.T) {
		_, err := svc.Dispense(ctx, DispenseRequest{
			ConsultationID: c.ID,
			Items:          []DispenseItem{{PrescriptionID: "x", Quantity: 0}},
		})
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("error = %v, want ErrInvalidQuantity", err)
		}
	})
}

func TestDispenseErrors(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()

	t.Run("unknown consultation", func(t *testing.T) {
		_, err := svc.Dispense(ctx, DispenseRequest{ConsultationID: "missing"})
		if !errors.Is(err, ErrConsultationNotFound) {
			t.Errorf("error = %v, want ErrConsultationNotFound", err)
		}
	})

	t.Run("no prescriptions", func(t *testing.T) {
		c, err := consultation.New(st).Save(ctx, consultation.SaveRequest{
			AppointmentID: "1",
			Diagnosis:     "Rest only",
		})
		if err != nil {
			t.Fatal(err)
		}
		_, err = svc.Dispense(ctx, DispenseRequest{ConsultationID: c.ID})
		if !errors.Is(err, ErrNothingToDispense) {
			t.Errorf("error = %v, want ErrNothingToDispense", err)
		}
	})

	t.Run("unresolvable medicine", func(t *testing.T) {
		c, err := consultation.New(st).Save(ctx, consultation.SaveRequest{
			AppointmentID: "2",
			Diagnosis:     "Rare condition",
			Prescriptions: []consultation.PrescriptionInput{{
				MedicineName: "Unobtainium 1mg",
				Quantity:     1,
			}},
		})
		if err != nil {
			t.Fatal(err)
		}
		_, err = svc.Dispense(ctx, DispenseRequest{ConsultationID: c.ID})
		if !errors.Is(err, ErrMedicineNotFound) {
			t.Errorf("error = %v, want ErrMedicineNotFound", err)
		}
	})
}
