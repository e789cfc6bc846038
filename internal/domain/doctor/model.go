package doctor

import (
	"time"
)

// Doctor maps to the doctor table. PasswordHash never leaves the service
// layer.
type Doctor struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	Degree       *string   `json:"degree"`
	PhoneNo      *string   `json:"phoneNo"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the public projection of a doctor returned by every endpoint.
type Profile struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Fullname string  `json:"fullname"`
	Degree   *string `json:"degree"`
	PhoneNo  *string `json:"phoneNo"`
}

func (d *Doctor) Profile() Profile {
	return Profile{
		ID:       d.ID,
		Email:    d.Email,
		Fullname: d.Fullname,
		Degree:   d.Degree,
		PhoneNo:  d.PhoneNo,
	}
}

type RegisterRequest struct {
	Fullname string  `json:"fullname" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6,max=72"`
	Degree   *string `json:"degree" validate:"omitempty,max=255"`
	PhoneNo  *string `json:"phoneNo" validate:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a merge patch: nil fields keep their current value.
type UpdateProfileRequest struct {
	Fullname *string `json:"fullname" validate:"omitnil,max=255"`
	Degree   *string `json:"degree" validate:"omitnil,max=255"`
	PhoneNo  *string `json:"phoneNo" validate:"omitnil,max=32"`
	Password *string `json:"password" validate:"omitnil,min=6,max=72"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Doctor    *Doctor
}
