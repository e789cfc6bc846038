package prescription

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	// GetByID returns the prescription with its patient attached.
	GetByID(ctx context.Context, id int64) (*Prescription, error)
	GetForUpdate(ctx context.Context, id int64) (*Prescription, error)
	// List orders newest first and attaches patients.
	List(ctx context.Context, f ListFilter) ([]*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	Delete(ctx context.Context, id int64) error
}

type DoseRepository interface {
	Create(ctx context.Context, d *Dose) error
	// GetByID returns the dose with its prescription attached.
	GetByID(ctx context.Context, id int64) (*Dose, error)
	GetForUpdate(ctx context.Context, id int64) (*Dose, error)
	List(ctx context.Context, f DoseFilter) ([]*Dose, error)
	Update(ctx context.Context, d *Dose) error
	Delete(ctx context.Context, id int64) error
}
