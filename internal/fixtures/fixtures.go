// Package fixtures seeds the store with the demo clinic roster. Doctor
// availability and demo appointments are dated "today" at load time so the
// visit queue is never empty on a fresh start.
package fixtures

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinicdesk_backend/internal/model"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
	"github.com/clinicdesk/clinicdesk_backend/pkg/util/password"
)

// DefaultDemoPassword is hashed for every fixture user unless config
// overrides it.
const DefaultDemoPassword = "clinic123"

const dateLayout = "2006-01-02"

// Seed is everything the demo deployment starts with.
type Seed struct {
	Doctors      []model.Doctor
	Medicines    []model.Medicine
	Patients     []model.Patient
	Appointments []model.Appointment
	Users        []model.User
}

// Options tune what Load produces.
type Options struct {
	// DemoPassword is the plaintext hashed into every fixture user.
	// Empty means DefaultDemoPassword.
	DemoPassword string
	// IncludeDemoPatients controls whether the two walk-through patients
	// and their appointments are part of the seed.
	IncludeDemoPatients bool
	// Now lets tests pin the seed date. Zero means time.Now().
	Now time.Time
}

// Load builds the default seed with today's date stamped into availability
// and demo appointments.
func Load() (*Seed, error) {
	return LoadWith(Options{IncludeDemoPatients: true})
}

func LoadWith(opts Options) (*Seed, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := now.Format(dateLayout)

	plaintext := opts.DemoPassword
	if plaintext == "" {
		plaintext = DefaultDemoPassword
	}
	// One hash shared across the roster; argon2id is too slow to run four
	// times at every startup for identical input.
	hash, err := password.HashWithParams(plaintext, password.LowMemoryParams())
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	seed := &Seed{
		Doctors:   doctors(today),
		Medicines: medicines(),
		Users:     users(hash),
	}
	if opts.IncludeDemoPatients {
		seed.Patients = patients(now)
		seed.Appointments = appointments(today, now)
	}
	return seed, nil
}

// Apply installs the seed into an empty store.
func Apply(st *store.Store, seed *Seed) error {
	if err := st.Seed(seed.Doctors, seed.Medicines); err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}
	for _, p := range seed.Patients {
		if err := st.AddPatient(p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.ID, err)
		}
	}
	for _, a := range seed.Appointments {
		if err := st.AddAppointment(a); err != nil {
			return fmt.Errorf("seed appointment %s: %w", a.ID, err)
		}
	}
	return nil
}

func doctors(today string) []model.Doctor {
	return []model.Doctor{
		{
			ID:              "1",
			Name:            "Dr. Sarah Johnson",
			Specialization:  "Cardiology",
			Qualification:   "MD, FACC",
			Experience:      15,
			ConsultationFee: 500,
			Rating:          4.8,
			Availability: []model.TimeSlot{
				{ID: "1", Date: today, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
				{ID: "2", Date: today, StartTime: "14:00", EndTime: "17:00", IsAvailable: true},
			},
		},
		{
			ID:              "2",
			Name:            "Dr. Michael Chen",
			Specialization:  "Orthopedics",
			Qualification:   "MS Ortho, FRCS",
			Experience:      12,
			ConsultationFee: 450,
			Rating:          4.7,
			Availability: []model.TimeSlot{
				{ID: "3", Date: today, StartTime: "10:00", EndTime: "13:00", IsAvailable: true},
				{ID: "4", Date: today, StartTime: "15:00", EndTime: "18:00", IsAvailable: true},
			},
		},
		{
			ID:              "3",
			Name:            "Dr. Emily Rodriguez",
			Specialization:  "Pediatrics",
			Qualification:   "MD Pediatrics",
			Experience:      8,
			ConsultationFee: 400,
			Rating:          4.9,
			Availability: []model.TimeSlot{
				{ID: "5", Date: today, StartTime: "08:00", EndTime: "11:00", IsAvailable: true},
				{ID: "6", Date: today, StartTime: "13:00", EndTime: "16:00", IsAvailable: true},
			},
		},
		{
			ID:              "4",
			Name:            "Dr. James Wilson",
			Specialization:  "Internal Medicine",
			Qualification:   "MD Internal Medicine",
			Experience:      20,
			ConsultationFee: 350,
			Rating:          4.6,
			Availability: []model.TimeSlot{
				{ID: "7", Date: today, StartTime: "09:30", EndTime: "12:30", IsAvailable: true},
				{ID: "8", Date: today, StartTime: "14:30", EndTime: "17:30", IsAvailable: true},
			},
		},
	}
}

func medicines() []model.Medicine {
	return []model.Medicine{
		{ID: "1", Name: "Paracetamol 500mg", Category: "Analgesic", Manufacturer: "PharmaCorp", Price: 2.5, Stock: 500, ExpiryDate: "2025-12-31", BatchNumber: "PC001"},
		{ID: "2", Name: "Amoxicillin 250mg", Category: "Antibiotic", Manufacturer: "MediCare Ltd", Price: 12.0, Stock: 200, ExpiryDate: "2025-08-15", BatchNumber: "MC002"},
		{ID: "3", Name: "Lisinopril 10mg", Category: "ACE Inhibitor", Manufacturer: "CardioMed", Price: 15.5, Stock: 150, ExpiryDate: "2025-10-20", BatchNumber: "CM003"},
		{ID: "4", Name: "Metformin 500mg", Category: "Antidiabetic", Manufacturer: "DiabeCare", Price: 8.0, Stock: 300, ExpiryDate: "2025-11-30", BatchNumber: "DC004"},
	}
}

func patients(now time.Time) []model.Patient {
	return []model.Patient{
		{
			ID:               "1",
			Name:             "John Doe",
			Age:              45,
			Gender:           model.GenderMale,
			Contact:          "+1-555-0123",
			Email:            "john.doe@email.com",
			Address:          "123 Main St, City, State",
			Type:             model.PatientGeneral,
			EmergencyContact: "+1-555-0124",
			CreatedAt:        now,
		},
		{
			ID:               "2",
			Name:             "Jane Smith",
			Age:              32,
			Gender:           model.GenderFemale,
			Contact:          "+1-555-0125",
			Email:            "jane.smith@email.com",
			Address:          "456 Oak Ave, City, State",
			Type:             model.PatientCorporate,
			EmergencyContact: "+1-555-0126",
			CreatedAt:        now,
		},
	}
}

func appointments(today string, now time.Time) []model.Appointment {
	return []model.Appointment{
		{
			ID:        "1",
			PatientID: "1",
			DoctorID:  "1",
			Date:      today,
			TimeSlot:  "09:00-09:30",
			Reason:    "Chest pain evaluation",
			Status:    model.AppointmentScheduled,
			Priority:  model.PriorityUrgent,
			CreatedAt: now,
		},
		{
			ID:        "2",
			PatientID: "2",
			DoctorID:  "2",
			Date:      today,
			TimeSlot:  "10:00-10:30",
			Reason:    "Knee joint pain",
			Status:    model.AppointmentInProgress,
			Priority:  model.PriorityNormal,
			CreatedAt: now,
		},
	}
}

func users(passwordHash string) []model.User {
	return []model.User{
		{
			ID:           "1",
			Name:         "Admin User",
			Email:        "admin@hospital.com",
			Role:         "Admin",
			Permissions:  []string{"all"},
			PasswordHash: passwordHash,
		},
		{
			ID:           "2",
			Name:         "Dr. Sarah Johnson",
			Email:        "sarah.johnson@hospital.com",
			Role:         "Doctor",
			Permissions:  []string{"consultation", "prescription", "reports"},
			PasswordHash: passwordHash,
		},
		{
			ID:           "3",
			Name:         "Nurse Mary",
			Email:        "mary@hospital.com",
			Role:         "Nurse",
			Permissions:  []string{"patient_management", "appointments"},
			PasswordHash: passwordHash,
		},
		{
			ID:           "4",
			Name:         "Pharmacist John",
			Email:        "john@hospital.com",
			Role:         "Pharmacist",
			Permissions:  []string{"pharmacy", "medicine_management"},
			PasswordHash: passwordHash,
		},
	}
}
