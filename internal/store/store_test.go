package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
)

func TestAddPatient(t *testing.T) {
	s := New()

	if err := s.AddPatient(model.Patient{ID: "p1", Name: "John Doe"}); err != nil {
		t.Fatalf("AddPatient() error = %v", err)
	}

	t.Run("duplicate id", func(t *testing.T) {
		err := s.AddPatient(model.Patient{ID: "p1", Name: "Someone Else"})
		if !errors.Is(err, ErrDuplicateID) {
			t.Errorf("error = %v, want ErrDuplicateID", err)
		}
	})

	t.Run("empty id", func(t *testing.T) {
		err := s.AddPatient(model.Patient{Name: "No ID"})
		if !errors.Is(err, ErrEmptyID) {
			t.Errorf("error = %v, want ErrEmptyID", err)
		}
	})

	t.Run("lookup", func(t *testing.T) {
		p, err := s.PatientByID("p1")
		if err != nil {
			t.Fatalf("PatientByID() error = %v", err)
		}
		if p.Name != "John Doe" {
			t.Errorf("Name = %q", p.Name)
		}
	})
}

func TestUpdatePatient(t *testing.T) {
	s := New()
	if err := s.AddPatient(model.Patient{ID: "p1", Name: "John Doe", Age: 45}); err != nil {
		t.Fatal(err)
	}

	p, err := s.UpdatePatient("p1", func(p *model.Patient) { p.Age = 46 })
	if err != nil {
		t.Fatalf("UpdatePatient() error = %v", err)
	}
	if p.Age != 46 {
		t.Errorf("Age = %d, want 46", p.Age)
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.UpdatePatient("missing", func(p *model.Patient) {})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("id is immutable", func(t *testing.T) {
		got, err := s.UpdatePatient("p1", func(p *model.Patient) { p.ID = "hijacked" })
		if err != nil {
			t.Fatal(err)
		}
		if got.ID != "p1" {
			t.Errorf("ID = %q, want p1", got.ID)
		}
	})
}

func TestInsertionOrder(t *testing.T) {
	s := New()
	for _, id := range []string{"b1", "b2", "b3"} {
		if err := s.AddBill(model.Bill{ID: id, Status: model.BillPending}); err != nil {
			t.Fatal(err)
		}
	}

	bills := s.Bills()
	if len(bills) != 3 {
		t.Fatalf("len = %d, want 3", len(bills))
	}
	for i, want := range []string{"b1", "b2", "b3"} {
		if bills[i].ID != want {
			t.Errorf("bills[%d].ID = %q, want %q", i, bills[i].ID, want)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	if err := s.AddAppointment(model.Appointment{ID: "a1", Status: model.AppointmentScheduled}); err != nil {
		t.Fatal(err)
	}

	snap := s.Appointments()
	snap[0].Status = model.AppointmentCancelled

	got, err := s.AppointmentByID("a1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.AppointmentScheduled {
		t.Errorf("mutating a snapshot leaked into the store: status = %q", got.Status)
	}
}

func TestSeedCatalogs(t *testing.T) {
	s := New()
	err := s.Seed(
		[]model.Doctor{{ID: "1", Name: "Dr. Sarah Johnson", ConsultationFee: 500}},
		[]model.Medicine{{ID: "m1", Name: "Paracetamol 500mg", Price: 2.5, Stock: 500}},
	)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	if _, err := s.DoctorByID("1"); err != nil {
		t.Errorf("DoctorByID() error = %v", err)
	}
	if _, err := s.MedicineByID("m1"); err != nil {
		t.Errorf("MedicineByID() error = %v", err)
	}

	t.Run("duplicate doctor id", func(t *testing.T) {
		err := New().Seed([]model.Doctor{{ID: "1"}, {ID: "1"}}, nil)
		if !errors.Is(err, ErrDuplicateID) {
			t.Errorf("error = %v, want ErrDuplicateID", err)
		}
	})
}

func TestAdjustMedicineStock(t *testing.T) {
	s := New()
	if err := s.Seed(nil, []model.Medicine{{ID: "m1", Name: "Lisinopril 10mg", Stock: 150}}); err != nil {
		t.Fatal(err)
	}

	m, err := s.AdjustMedicineStock("m1", -30)
	if err != nil {
		t.Fatalf("AdjustMedicineStock() error = %v", err)
	}
	if m.Stock != 120 {
		t.Errorf("Stock = %d, want 120", m.Stock)
	}

	t.Run("underflow", func(t *testing.T) {
		_, err := s.AdjustMedicineStock("m1", -121)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("error = %v, want ErrInsufficientStock", err)
		}
		m, _ := s.MedicineByID("m1")
		if m.Stock != 120 {
			t.Errorf("failed adjust changed stock: %d", m.Stock)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.AdjustMedicineStock("missing", -1)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestCurrentSlots(t *testing.T) {
	s := New()

	if s.CurrentPatient() != nil {
		t.Fatal("fresh store has a current patient")
	}

	s.SetCurrentPatient(&model.Patient{ID: "p1", Name: "John Doe"})
	got := s.CurrentPatient()
	if got == nil || got.ID != "p1" {
		t.Fatalf("CurrentPatient() = %+v", got)
	}

	// the getter must hand out a copy, not the slot itself
	got.Name = "mutated"
	if s.CurrentPatient().Name != "John Doe" {
		t.Error("mutating the returned patient leaked into the slot")
	}

	s.SetCurrentPatient(nil)
	if s.CurrentPatient() != nil {
		t.Error("slot not cleared")
	}

	s.SetCurrentAppointment(&model.Appointment{ID: "a1"})
	if a := s.CurrentAppointment(); a == nil || a.ID != "a1" {
		t.Errorf("CurrentAppointment() = %+v", a)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	if err := s.Seed(nil, []model.Medicine{{ID: "m1", Stock: 1000}}); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.AdjustMedicineStock("m1", -1)
		}()
		go func() {
			defer wg.Done()
			_ = s.Medicines()
			_, _, _, _ = s.Counts()
		}()
	}
	wg.Wait()

	m, err := s.MedicineByID("m1")
	if err != nil {
		t.Fatal(err)
	}
	if m.Stock != 950 {
		t.Errorf("Stock = %d, want 950", m.Stock)
	}
}
