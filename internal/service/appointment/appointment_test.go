package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

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

func today() string { return time.Now().Format("2006-01-02") }

func TestBook(t *testing.T) {
	st := seededStore(t)
	svc := New(st)
	ctx := context.Background()

	appt, err := svc.Book(ctx, BookRequest{
		PatientID: "1",
		DoctorID:  "1",
		Date:      today(),
		TimeSlot:  "09:30-10:00",
		Reason:    "Follow-up",
	})
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	if appt.Status != model.AppointmentScheduled {
		t.Errorf("Status = %q, want Scheduled", appt.Status)
	}
	if appt.Priority != model.PriorityNormal {
		t.Errorf("Priority = %q, want Normal default", appt.Priority)
	}
	if appt.ID == "" {
		t.Error("no id assigned")
	}

	// booking hands off the workflow baton
	if cur := st.CurrentAppointment(); cur == nil || cur.ID != appt.ID {
		t.Errorf("current appointment = %+v", cur)
	}
	if cur := st.CurrentPatient(); cur == nil || cur.ID != "1" {
		t.Errorf("current patient = %+v", cur)
	}
}

func TestBookValidation(t *testing.T) {
	svc := New(seededStore(t))
	ctx := context.Background()

	valid := func() BookRequest {
		return BookRequest{
			PatientID: "1", DoctorID: "1", Date: today(),
			TimeSlot: "11:00-11:30", Reason: "Checkup",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*BookRequest)
		wantErr error
	}{
		{"unknown patient", func(r *BookRequest) { r.PatientID = "404" }, ErrPatientNotFound},
		{"unknown doctor", func(r *BookRequest) { r.DoctorID = "404" }, ErrDoctorNotFound},
		{"bad date", func(r *BookRequest) { r.Date = "15/01/2024" }, ErrInvalidDate},
		{"missing slot", func(r *BookRequest) { r.TimeSlot = " " }, ErrSlotRequired},
		{"missing reason", func(r *BookRequest) { r.Reason = "" }, ErrReasonRequired},
		{"bad priority", func(r *BookRequest) { r.Priority = "ASAP" }, ErrInvalidPriority},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			_, err := svc.Book(ctx, req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("slot collision", func(t *testing.T) {
		req := valid()
		if _, err := svc.Book(ctx, req); err != nil {
			t.Fatal(err)
		}
		req.PatientID = "2"
		_, err := svc.Book(ctx, req)
		if !errors.Is(err, ErrSlotTaken) {
			t.Errorf("error = %v, want ErrSlotTaken", err)
		}
	})
}

func TestTodayQueue(t *testing.T) {
	svc := New(seededStore(t))

	entries, err := svc.TodayQueue(context.Background())
	if err != nil {
		t.Fatalf("TodayQueue() error = %v", err)
	}
	// the two demo appointments are dated today
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].TimeSlot > entries[1].TimeSlot {
		t.Errorf("queue not sorted by slot: %q before %q", entries[0].TimeSlot, entries[1].TimeSlot)
	}
	if entries[0].PatientName != "John Doe" {
		t.Errorf("PatientName = %q, want John Doe", entries[0].PatientName)
	}
	if entries[0].DoctorName != "Dr. Sarah Johnson" {
		t.Errorf("DoctorName = %q", entries[0].DoctorName)
	}
}

func TestSlots(t *testing.T) {
	svc := New(seededStore(t))
	ctx := context.Background()

	slots, err := svc.Slots(ctx, "1", today())
	if err != nil {
		t.Fatalf("Slots() error = %v", err)
	}
	// 09:00-12:00 and 14:00-17:00 both split into six half-hour slots
	if len(slots) != 12 {
		t.Fatalf("len = %d, want 12", len(slots))
	}
	if slots[0].Slot != "09:00-09:30" {
		t.Errorf("first slot = %q", slots[0].Slot)
	}
	if slots[5].Slot != "11:30-12:00" {
		t.Errorf("sixth slot = %q", slots[5].Slot)
	}
	if slots[6].Slot != "14:00-14:30" {
		t.Errorf("seventh slot = %q", slots[6].Slot)
	}

	// the demo roster already books 09:00-09:30 with doctor 1
	if slots[0].Available {
		t.Error("booked slot reported available")
	}
	if !slots[1].Available {
		t.Error("open slot reported unavailable")
	}

	t.Run("unknown doctor", func(t *testing.T) {
		_, err := svc.Slots(ctx, "404", today())
		if !errors.Is(err, ErrDoctorNotFound) {
			t.Errorf("error = %v, want ErrDoctorNotFound", err)
		}
	})

	t.Run("no availability that day", func(t *testing.T) {
		slots, err := svc.Slots(ctx, "1", "2030-01-01")
		if err != nil {
			t.Fatal(err)
		}
		if len(slots) != 0 {
			t.Errorf("len = %d, want 0", len(slots))
		}
	})
}

func TestTransitions(t *testing.T) {
	svc := New(seededStore(t))
	ctx := context.Background()

	// appointment "1" starts Scheduled
	a, err := svc.Start(ctx, "1")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if a.Status != model.AppointmentInProgress {
		t.Errorf("Status = %q", a.Status)
	}

	a, err = svc.Complete(ctx, "1")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if a.Status != model.AppointmentCompleted {
		t.Errorf("Status = %q", a.Status)
	}

	t.Run("terminal rejects everything", func(t *testing.T) {
		for name, fn := range map[string]func(context.Context, string) (*model.Appointment, error){
			"Start":      svc.Start,
			"Complete":   svc.Complete,
			"Cancel":     svc.Cancel,
			"MarkNoShow": svc.MarkNoShow,
		} {
			if _, err := fn(ctx, "1"); !errors.Is(err, ErrTerminalState) {
				t.Errorf("%s on completed appointment: error = %v, want ErrTerminalState", name, err)
			}
		}
	})

	t.Run("start requires scheduled", func(t *testing.T) {
		// appointment "2" is already In Progress
		_, err := svc.Start(ctx, "2")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("no-show in progress", func(t *testing.T) {
		// the visit queue offers No Show on called-in patients too,
		// so a fresh store: appointment "2" is seeded In Progress
		svc := New(seededStore(t))
		a, err := svc.MarkNoShow(ctx, "2")
		if err != nil {
			t.Fatalf("MarkNoShow() error = %v", err)
		}
		if a.Status != model.AppointmentNoShow {
			t.Errorf("Status = %q, want %q", a.Status, model.AppointmentNoShow)
		}
	})

	t.Run("cancel in progress", func(t *testing.T) {
		a, err := svc.Cancel(ctx, "2")
		if err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if a.Status != model.AppointmentCancelled {
			t.Errorf("Status = %q", a.Status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Start(ctx, "missing")
		if !errors.Is(err, ErrAppointmentNotFound) {
			t.Errorf("error = %v, want ErrAppointmentNotFound", err)
		}
	})
}

func TestListFilters(t *testing.T) {
	svc := New(seededStore(t))
	ctx := context.Background()

	tests := []struct {
		name string
		req  ListRequest
		want int
	}{
		{"all", ListRequest{}, 2},
		{"by patient", ListRequest{PatientID: "1"}, 1},
		{"by doctor", ListRequest{DoctorID: "2"}, 1},
		{"by status", ListRequest{Status: model.AppointmentInProgress}, 1},
		{"by date miss", ListRequest{Date: "1999-01-01"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(ctx, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}
