package patient

import (
	"time"

	"github.com/medtrack/medtrack/pkg/datefmt"
)

type DoctorRef struct {
	ID       int64   `json:"id"`
	Fullname string  `json:"fullname"`
	Email    string  `json:"email"`
	Degree   *string `json:"degree"`
	PhoneNo  *string `json:"phoneNo"`
}

type ClinicRef struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	LandlineNo *string `json:"landlineNo"`
	DoctorName string  `json:"doctorName"`
	Address    *string `json:"address"`
}

type Patient struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Gender    string       `json:"gender"`
	Contact   string       `json:"contact"`
	DOB       datefmt.Date `json:"dob"`
	Age       *int         `json:"age"`
	Address   *string      `json:"address"`
	Height    *float64     `json:"height"`
	Weight    *float64     `json:"weight"`
	Photo     *string      `json:"photo"`
	DoctorID  int64        `json:"doctorId"`
	ClinicID  int64        `json:"clinicId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Doctor    *DoctorRef   `json:"doctor,omitempty"`
	Clinic    *ClinicRef   `json:"clinic,omitempty"`
}

type CreateRequest struct {
	Name     string        `json:"name" validate:"required,max=255"`
	Gender   string        `json:"gender" validate:"required,max=32"`
	Contact  string        `json:"contact" validate:"required,max=32"`
	DOB      *datefmt.Date `json:"dob" validate:"required"`
	Age      *int          `json:"age" validate:"omitnil,gte=0,lte=150"`
	Address  *string       `json:"address" validate:"omitnil,max=500"`
	Height   *float64      `json:"height" validate:"omitnil,gt=0"`
	Weight   *float64      `json:"weight" validate:"omitnil,gt=0"`
	Photo    *string       `json:"photo"`
	DoctorID int64         `json:"doctorId" validate:"required,gt=0"`
	ClinicID int64         `json:"clinicId" validate:"required,gt=0"`
}

// UpdateRequest is a merge patch: nil fields keep their current value.
type UpdateRequest struct {
	Name     *string       `json:"name" validate:"omitnil,min=1,max=255"`
	Gender   *string       `json:"gender" validate:"omitnil,min=1,max=32"`
	Contact  *string       `json:"contact" validate:"omitnil,min=1,max=32"`
	DOB      *datefmt.Date `json:"dob"`
	Age      *int          `json:"age" validate:"omitnil,gte=0,lte=150"`
	Address  *string       `json:"address" validate:"omitnil,max=500"`
	Height   *float64      `json:"height" validate:"omitnil,gt=0"`
	Weight   *float64      `json:"weight" validate:"omitnil,gt=0"`
	Photo    *string       `json:"photo"`
	DoctorID *int64        `json:"doctorId" validate:"omitnil,gt=0"`
	ClinicID *int64        `json:"clinicId" validate:"omitnil,gt=0"`
}

// ListFilter narrows List. Nil fields do not filter.
type ListFilter struct {
	DoctorID *int64
	ClinicID *int64
}
