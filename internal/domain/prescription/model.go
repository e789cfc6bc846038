package prescription

import (
	"time"

	"github.com/medtrack/medtrack/pkg/datefmt"
)

// PatientRef is the patient attached to a prescription on reads.
type PatientRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Age     *int   `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

type Prescription struct {
	ID            int64        `json:"id"`
	PatientID     int64        `json:"patient_id"`
	Date          datefmt.Date `json:"date"`
	Dieases       string       `json:"dieases"`
	Symptoms      string       `json:"symptoms"`
	PaymentMode   string       `json:"payment_mode"`
	PaymentAmount *float64     `json:"payment_amount"`
	PaidAmount    *float64     `json:"paid_amount"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Patient       *PatientRef  `json:"Patient,omitempty"`
}

type CreateRequest struct {
	PatientID     int64         `json:"patient_id" validate:"required,gt=0"`
	Date          *datefmt.Date `json:"date" validate:"required"`
	Dieases       string        `json:"dieases" validate:"required"`
	Symptoms      string        `json:"symptoms" validate:"required"`
	PaymentMode   string        `json:"payment_mode" validate:"required,oneof=cash online"`
	PaymentAmount *float64      `json:"payment_amount" validate:"omitnil,gte=0,lt=100000000"`
	PaidAmount    *float64      `json:"paid_amount" validate:"omitnil,gte=0,lt=100000000"`
}

// UpdateRequest is a merge patch: nil fields keep their current value.
type UpdateRequest struct {
	PatientID     *int64        `json:"patient_id" validate:"omitnil,gt=0"`
	Date          *datefmt.Date `json:"date"`
	Dieases       *string       `json:"dieases" validate:"omitnil,min=1"`
	Symptoms      *string       `json:"symptoms" validate:"omitnil,min=1"`
	PaymentMode   *string       `json:"payment_mode" validate:"omitnil,oneof=cash online"`
	PaymentAmount *float64      `json:"payment_amount" validate:"omitnil,gte=0,lt=100000000"`
	PaidAmount    *float64      `json:"paid_amount" validate:"omitnil,gte=0,lt=100000000"`
}

type ListFilter struct {
	PatientID *int64
}

// Summary is the compact prescription shape returned with its doses for a
// patient.
type Summary struct {
	ID            int64         `json:"id"`
	Disease       string        `json:"disease"`
	Date          datefmt.Date  `json:"date"`
	Symptoms      string        `json:"symptoms"`
	PaymentMode   string        `json:"payment_mode"`
	PaymentAmount *float64      `json:"payment_amount"`
	PaidAmount    *float64      `json:"paid_amount"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Doses         []DoseSummary `json:"doses"`
}

type DoseSummary struct {
	ID           int64  `json:"id"`
	MedicineName string `json:"medicine_name"`
	TimeOfDay    string `json:"time_of_day"`
	MealTime     string `json:"meal_time"`
}

type PatientPrescriptions struct {
	PatientID     int64      `json:"patientId"`
	Prescriptions []*Summary `json:"prescriptions"`
}

func (p *Prescription) summary() *Summary {
	return &Summary{
		ID:            p.ID,
		Disease:       p.Dieases,
		Date:          p.Date,
		Symptoms:      p.Symptoms,
		PaymentMode:   p.PaymentMode,
		PaymentAmount: p.PaymentAmount,
		PaidAmount:    p.PaidAmount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Doses:         []DoseSummary{},
	}
}
