package billing

import (
	"context"
	"testing"
	"time"

	"github.com/clinicdesk/clinicdesk_backend/internal/fixtures"
	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/appointment"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/consultation"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/patient"
	"github.com/clinicdesk/clinicdesk_backend/internal/service/pharmacy"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

// TestFullVisitPipeline walks one patient through intake, booking,
// consultation, dispensing and checkout.
func TestFullVisitPipeline(t *testing.T) {
	seed, err := fixtures.LoadWith(fixtures.Options{})
	if err != nil {
		t.Fatal(err)
	}
	st := store.New()
	if err := fixtures.Apply(st, seed); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	patients := patient.New(st)
	appointments := appointment.New(st)
	consultations := consultation.New(st)
	counter := pharmacy.New(st)
	checkout := New(st)

	// intake
	p, err := patients.Register(ctx, patient.RegisterRequest{
		Name:    "John Doe",
		Age:     45,
		Gender:  model.GenderMale,
		Contact: "+1-555-0123",
		Email:   "john.doe@email.com",
	})
	if err != nil {
		t.Fatalf("intake: %v", err)
	}

	// booking with the cardiologist
	appt, err := appointments.Book(ctx, appointment.BookRequest{
		PatientID: p.ID,
		DoctorID:  "1",
		Date:      time.Now().Format("2006-01-02"),
		TimeSlot:  "09:00-09:30",
		Reason:    "Chest pain evaluation",
		Priority:  model.PriorityUrgent,
	})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	// visit starts, consultation is recorded
	if _, err := consultations.Start(ctx, appt.ID); err != nil {
		t.Fatalf("start visit: %v", err)
	}
	cons, err := consultations.Save(ctx, consultation.SaveRequest{
		AppointmentID: appt.ID,
		Diagnosis:     "Hypertension",
		Symptoms:      []string{"chest pain", "dizziness"},
		Prescriptions: []consultation.PrescriptionInput{{
			MedicineName: "Lisinopril 10mg",
			Dosage:       "10mg",
			Frequency:    "Once daily",
			Duration:     "30 days",
			Quantity:     30,
		}},
	})
	if err != nil {
		t.Fatalf("save consultation: %v", err)
	}
	if cons.ConsultationFee != 500 {
		t.Errorf("fee = %v, want the cardiologist's 500", cons.ConsultationFee)
	}

	closed, err := appointments.Get(ctx, appt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if closed.Status != model.AppointmentCompleted {
		t.Errorf("appointment status = %q, want Completed", closed.Status)
	}

	// pharmacy dispenses 30 x 15.5
	bill, err := counter.Dispense(ctx, pharmacy.DispenseRequest{ConsultationID: cons.ID})
	if err != nil {
		t.Fatalf("dispense: %v", err)
	}
	if bill.TotalAmount != 465.0 {
		t.Errorf("bill total = %v, want 465.0", bill.TotalAmount)
	}
	if m, _ := st.MedicineByID("3"); m.Stock != 120 {
		t.Errorf("Lisinopril stock = %d, want 120", m.Stock)
	}

	// checkout settles in full
	paid, err := checkout.ProcessPayment(ctx, bill.ID, PaymentRequest{
		Amount: 465.0,
		Method: model.PaymentCash,
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if paid.Status != model.BillPaid {
		t.Errorf("status = %q, want Paid", paid.Status)
	}
	if paid.PaidAmount != 465.0 || paid.Balance() != 0 {
		t.Errorf("paid = %v balance = %v", paid.PaidAmount, paid.Balance())
	}

	pending, err := checkout.Pending(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("%d bills still pending after checkout", len(pending))
	}
}
