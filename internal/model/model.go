// Package model holds the clinic domain entities. Everything here is a
// plain value type; all persistence lives in internal/store.
package model

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type PatientType string

const (
	PatientGeneral   PatientType = "General"
	PatientCorporate PatientType = "Corporate"
)

// IDProof is an identity document captured at intake. The bytes are held
// in memory and never parsed.
type IDProof struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

type Patient struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Age              int         `json:"age"`
	Gender           Gender      `json:"gender"`
	Contact          string      `json:"contact"`
	Email            string      `json:"email,omitempty"`
	Address          string      `json:"address,omitempty"`
	Type             PatientType `json:"type"`
	IDProof          *IDProof    `json:"idProof,omitempty"`
	EmergencyContact string      `json:"emergencyContact,omitempty"`
	MedicalHistory   string      `json:"medicalHistory,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// TimeSlot is one bookable window in a doctor's availability. Dates and
// times are plain strings ("2006-01-02", "15:04") because the schedule is
// clinic-local and never crosses time zones.
type TimeSlot struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

type Doctor struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Specialization  string     `json:"specialization"`
	Qualification   string     `json:"qualification"`
	Experience      int        `json:"experience"`
	Availability    []TimeSlot `json:"availability"`
	ConsultationFee float64    `json:"consultationFee"`
	Rating          float64    `json:"rating"`
	Image           string     `json:"image,omitempty"`
}

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "Scheduled"
	AppointmentInProgress AppointmentStatus = "In Progress"
	AppointmentCompleted  AppointmentStatus = "Completed"
	AppointmentCancelled  AppointmentStatus = "Cancelled"
	AppointmentNoShow     AppointmentStatus = "No Show"
)

// Terminal reports whether no further status transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

type AppointmentPriority string

const (
	PriorityNormal    AppointmentPriority = "Normal"
	PriorityUrgent    AppointmentPriority = "Urgent"
	PriorityEmergency AppointmentPriority = "Emergency"
)

type Appointment struct {
	ID        string              `json:"id"`
	PatientID string              `json:"patientId"`
	DoctorID  string              `json:"doctorId"`
	Date      string              `json:"date"`
	TimeSlot  string              `json:"timeSlot"`
	Reason    string              `json:"reason"`
	Status    AppointmentStatus   `json:"status"`
	Priority  AppointmentPriority `json:"priority"`
	CreatedAt time.Time           `json:"createdAt"`
}

type Prescription struct {
	ID           string  `json:"id"`
	MedicineID   string  `json:"medicineId,omitempty"`
	MedicineName string  `json:"medicineName"`
	Dosage       string  `json:"dosage"`
	Frequency    string  `json:"frequency"`
	Duration     string  `json:"duration"`
	Instructions string  `json:"instructions"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

type Test struct {
	ID           string  `json:"id"`
	TestName     string  `json:"testName"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Instructions string  `json:"instructions,omitempty"`
}

type Consultation struct {
	ID              string         `json:"id"`
	AppointmentID   string         `json:"appointmentId"`
	PatientID       string         `json:"patientId"`
	DoctorID        string         `json:"doctorId"`
	Diagnosis       string         `json:"diagnosis"`
	Symptoms        []string       `json:"symptoms"`
	Notes           string         `json:"notes"`
	Prescriptions   []Prescription `json:"prescriptions"`
	Tests           []Test         `json:"tests"`
	FollowUp        string         `json:"followUp,omitempty"`
	ConsultationFee float64        `json:"consultationFee"`
	CreatedAt       time.Time      `json:"createdAt"`
}

type Medicine struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Manufacturer string  `json:"manufacturer"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	ExpiryDate   string  `json:"expiryDate"`
	BatchNumber  string  `json:"batchNumber"`
}

type BillStatus string

const (
	BillPending BillStatus = "Pending"
	BillPaid    BillStatus = "Paid"
	BillPartial BillStatus = "Partial"
)

type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "Cash"
	PaymentCard      PaymentMethod = "Card"
	PaymentUPI       PaymentMethod = "UPI"
	PaymentInsurance PaymentMethod = "Insurance"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentInsurance:
		return true
	}
	return false
}

type Bill struct {
	ID              string        `json:"id"`
	PatientID       string        `json:"patientId"`
	ConsultationID  string        `json:"consultationId,omitempty"`
	ConsultationFee float64       `json:"consultationFee"`
	MedicineCharges float64       `json:"medicineCharges"`
	TestCharges     float64       `json:"testCharges"`
	TotalAmount     float64       `json:"totalAmount"`
	PaidAmount      float64       `json:"paidAmount"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty"`
	Status          BillStatus    `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// Balance is the amount still owed on the bill.
func (b Bill) Balance() float64 { return b.TotalAmount - b.PaidAmount }

// User is a fixture-only identity. PasswordHash is an argon2id PHC string.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	PasswordHash string   `json:"-"`
}
