package clinic

import (
	"time"
)

// DoctorRef is the owning doctor attached to a clinic on reads.
type DoctorRef struct {
	ID       int64   `json:"id"`
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Degree   *string `json:"degree"`
	PhoneNo  *string `json:"phoneNo"`
}

type Clinic struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	LandlineNo  *string    `json:"landlineNo"`
	DoctorName  string     `json:"doctorName"`
	Address     *string    `json:"address"`
	PricePerDay *string    `json:"price_per_day"`
	DoctorID    int64      `json:"doctor_id"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Doctor      *DoctorRef `json:"doctor,omitempty"`
}

type CreateRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	LandlineNo  *string `json:"landlineNo" validate:"omitnil,max=32"`
	DoctorName  string  `json:"doctorName" validate:"required,max=255"`
	Address     *string `json:"address"`
	PricePerDay *string `json:"price_per_day" validate:"omitnil,max=32"`
	DoctorID    int64   `json:"doctor_id" validate:"required,gt=0"`
}

// UpdateRequest is a merge patch: nil fields keep their current value.
type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=255"`
	LandlineNo  *string `json:"landlineNo" validate:"omitnil,max=32"`
	DoctorName  *string `json:"doctorName" validate:"omitnil,min=1,max=255"`
	Address     *string `json:"address"`
	PricePerDay *string `json:"price_per_day" validate:"omitnil,max=32"`
	DoctorID    *int64  `json:"doctor_id" validate:"omitnil,gt=0"`
}

// ListFilter narrows List. A nil field does not filter.
type ListFilter struct {
	DoctorID *int64
}
