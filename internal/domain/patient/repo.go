package patient

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	// GetByID returns the patient with doctor and clinic attached.
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetForUpdate(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context, f ListFilter) ([]*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
}
