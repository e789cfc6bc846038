package clinic

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, c *Clinic) error
	// GetByID returns the clinic with its doctor attached.
	GetByID(ctx context.Context, id int64) (*Clinic, error)
	GetForUpdate(ctx context.Context, id int64) (*Clinic, error)
	List(ctx context.Context, f ListFilter) ([]*Clinic, error)
	Update(ctx context.Context, c *Clinic) error
	Delete(ctx context.Context, id int64) error
}
