package prescription

import (
	"time"

	"github.com/medtrack/medtrack/pkg/datefmt"
)

const (
	defaultMedicineType = "capsule"
	defaultQuantity     = 1
)

// PrescriptionRef is the prescription attached to a dose on reads.
type PrescriptionRef struct {
	ID       int64        `json:"id"`
	Date     datefmt.Date `json:"date"`
	Dieases  string       `json:"dieases"`
	Symptoms string       `json:"symptoms"`
}

type Dose struct {
	ID           int64            `json:"id"`
	PresID       int64            `json:"pres_id"`
	Days         int              `json:"days"`
	MedicineType string           `json:"medicine_type"`
	MedicineName string           `json:"medicine_name"`
	TimeOfDay    string           `json:"time_of_day"`
	MealTime     string           `json:"meal_time"`
	Quantity     int              `json:"quantity"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Prescription *PrescriptionRef `json:"prescription,omitempty"`
}

type CreateDoseRequest struct {
	PresID       int64   `json:"pres_id" validate:"required,gt=0"`
	Days         int     `json:"days" validate:"required,gt=0,lte=2147483647"`
	MedicineType *string `json:"medicine_type" validate:"omitnil,oneof=capsule syrup"`
	MedicineName string  `json:"medicine_name" validate:"required,max=255"`
	TimeOfDay    string  `json:"time_of_day" validate:"required,oneof=morning afternoon evening"`
	MealTime     string  `json:"meal_time" validate:"required,oneof=before after"`
	Quantity     *int    `json:"quantity" validate:"omitnil,gt=0,lte=2147483647"`
}

// UpdateDoseRequest is a merge patch: nil fields keep their current value.
type UpdateDoseRequest struct {
	PresID       *int64  `json:"pres_id" validate:"omitnil,gt=0"`
	Days         *int    `json:"days" validate:"omitnil,gt=0,lte=2147483647"`
	MedicineType *string `json:"medicine_type" validate:"omitnil,oneof=capsule syrup"`
	MedicineName *string `json:"medicine_name" validate:"omitnil,min=1,max=255"`
	TimeOfDay    *string `json:"time_of_day" validate:"omitnil,oneof=morning afternoon evening"`
	MealTime     *string `json:"meal_time" validate:"omitnil,oneof=before after"`
	Quantity     *int    `json:"quantity" validate:"omitnil,gt=0,lte=2147483647"`
}

// DoseFilter narrows ListDoses. OldestFirst flips the default newest-first
// order.
type DoseFilter struct {
	PresID      *int64
	PatientID   *int64
	OldestFirst bool
}
