package consultation

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicdesk/clinicdesk_backend/internal/fixtures"
	"github.com/clinicdesk/clinicdesk_backend/internal/model"
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

func TestStart(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()

	a, err := svc.Start(ctx, "1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if a.Status != model.AppointmentInProgress {
		t.Errorf("Status = %q", a.Status)
	}
	if cur := st.CurrentAppointment(); cur == nil || cur.ID != "1" {
		t.Errorf("current appointment = %+v", cur)
	}
	if cur := st.CurrentPatient(); cur == nil || cur.Name != "John Doe" {
		t.Errorf("current patient = %+v", cur)
	}

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := svc.Start(ctx, "missing")
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Errorf("error = %v, want ErrAppointmentNotFound", err)
		}
	})

	t.Run("closed appointment", func(t *testing.T) {
		if _, err := st.UpdateAppointment("2", func(a *model.Appointment) {
			a.Status = model.AppointmentCancelled
		}); err != nil {
			t.Fatal(err)
		}
		_, err := svc.Start(ctx, "2")
		if !errors.Is(err, ErrAppointmentClosed) {
			t.Errorf("error = %v, want ErrAppointmentClosed", err)
		}
	})
}

func TestSave(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()

	c, err := svc.Save(ctx, SaveRequest{
		AppointmentID: "1",
		Diagnosis:     "Hypertension",
		Symptoms:      []string{"chest pain", "dizziness"},
		Notes:         "Monitor blood pressure twice daily",
		Prescriptions: []PrescriptionInput{{
			MedicineID: "3", // Lisinopril 10mg
			Dosage:     "10mg",
			Frequency:  "Once daily",
			Duration:   "30 days",
			Quantity:   30,
		}},
		FollowUp: "2 weeks",
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if c.PatientID != "1" || c.DoctorID != "1" {
		t.Errorf("links = patient %q doctor %q", c.PatientID, c.DoctorID)
	}
	// fee comes from the treating doctor's profile
	if c.ConsultationFee != 500 {
		t.Errorf("ConsultationFee = %v, want 500", c.ConsultationFee)
	}
	if len(c.Prescriptions) != 1 {
		t.Fatalf("prescriptions = %d", len(c.Prescriptions))
	}
	rx := c.Prescriptions[0]
	if rx.ID == "" {
		t.Error("prescription id not assigned")
	}
	if rx.MedicineName != "Lisinopril 10mg" {
		t.Errorf("MedicineName = %q, want catalog name", rx.MedicineName)
	}
	if rx.Price != 15.5 {
		t.Errorf("Price = %v, want 15.5", rx.Price)
	}

	// saving completes the visit
	appt, err := st.AppointmentByID("1")
	if err != nil {
		t.Fatal(err)
	}
	if appt.Status != model.AppointmentCompleted {
		t.Errorf("appointment status = %q, want Completed", appt.Status)
	}

	t.Run("second save rejected", func(t *testing.T) {
		_, err := svc.Save(ctx, SaveRequest{AppointmentID: "1", Diagnosis: "x"})
		// the appointment is now Completed, which closes it first
		if !errors.Is(err, ErrAppointmentClosed) {
			t.Errorf("error = %v, want ErrAppointmentClosed", err)
		}
	})
}

func TestSaveValidation(t *testing.T) {
	svc := New(seededStore(t))
	ctx := context.Background()

	tests := []struct {
		name    string
		req     SaveRequest
		wantErr error
	}{
		{
			"missing diagnosis",
			SaveRequest{AppointmentID: "1", Diagnosis: "  "},
			ErrDiagnosisRequired,
		},
		{
			"unknown appointment",
			SaveRequest{AppointmentID: "missing", Diagnosis: "flu"},
			ErrAppointmentNotFound,
		},
		{
			"prescription without medicine",
			SaveRequest{
				AppointmentID: "1", Diagnosis: "flu",
				Prescriptions: []PrescriptionInput{{Quantity: 5}},
			},
			ErrInvalidPrescription,
		},
		{
			"prescription without quantity",
			SaveRequest{
				AppointmentID: "1", Diagnosis: "flu",
				Prescriptions: []PrescriptionInput{{MedicineName: "Paracetamol 500mg"}},
			},
			ErrInvalidPrescription,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()

	c, err := svc.Save(ctx, SaveRequest{AppointmentID: "1", Diagnosis: "Hypertension"})
	if err != nil {
		t.Fatal(err)
	}

	notes := "revised notes"
	got, err := svc.Update(ctx, c.ID, UpdateRequest{Notes: &notes})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Notes != "revised notes" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if got.Diagnosis != "Hypertension" {
		t.Errorf("unset field changed: %q", got.Diagnosis)
	}

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", UpdateRequest{Notes: &notes})
		if !errors.Is(err, ErrConsultationNotFound) {
			t.Errorf("error = %v, want ErrConsultationNotFound", err)
		}
	})
}

func TestListFilters(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()

	if _, err := svc.Save(ctx, SaveRequest{AppointmentID: "1", Diagnosis: "A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Save(ctx, SaveRequest{AppointmentID: "2", Diagnosis: "B"}); err != nil {
		t.Fatal(err)
	}

	all, _ := svc.List(ctx, ListRequest{})
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
	byPatient, _ := svc.List(ctx, ListRequest{PatientID: "2"})
	if len(byPatient) != 1 || byPatient[0].Diagnosis != "B" {
		t.Errorf("byPatient = %+v", byPatient)
	}
	byDoctor, _ := svc.List(ctx, ListRequest{DoctorID: "1"})
	if len(byDoctor) != 1 || byDoctor[0].Diagnosis != "A" {
		t.Errorf("byDoctor = %+v", byDoctor)
	}
}
