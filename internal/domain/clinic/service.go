package clinic

import (
	"context"

	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/schema"
	"github.com/medtrack/medtrack/internal/platform/validation"
)

const msgNotFound = "Clinic not found"

type Service struct {
	repo    Repository
	tx      db.TxRunner
	parents db.RowChecker
}

func NewService(repo Repository, tx db.TxRunner, parents db.RowChecker) *Service {
	return &Service{repo: repo, tx: tx, parents: parents}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Clinic, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := db.RequireExists(ctx, s.parents, schema.TableDoctor, req.DoctorID); err != nil {
		return nil, err
	}

	c := &Clinic{
		Name:        req.Name,
		LandlineNo:  req.LandlineNo,
		DoctorName:  req.DoctorName,
		Address:     req.Address,
		PricePerDay: req.PricePerDay,
		DoctorID:    req.DoctorID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, db.Classify(err, msgNotFound, "Error creating clinic")
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Clinic, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching clinic")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*Clinic, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching clinics")
	}
	return items, nil
}

// ListByDoctor returns the doctor's clinics, newest first. An unknown doctor
// yields an empty list.
func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*Clinic, error) {
	return s.List(ctx, ListFilter{DoctorID: &doctorID})
}

// Update merges the supplied fields. Moving the clinic to another doctor
// requires that doctor to exist.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Clinic, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var out *Clinic
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.DoctorID != nil && *req.DoctorID != c.DoctorID {
			if err := db.RequireExists(ctx, s.parents, schema.TableDoctor, *req.DoctorID); err != nil {
				return err
			}
			c.DoctorID = *req.DoctorID
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.LandlineNo != nil {
			c.LandlineNo = req.LandlineNo
		}
		if req.DoctorName != nil {
			c.DoctorName = *req.DoctorName
		}
		if req.Address != nil {
			c.Address = req.Address
		}
		if req.PricePerDay != nil {
			c.PricePerDay = req.PricePerDay
		}
		if err := s.repo.Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error updating clinic")
	}
	return out, nil
}

// Delete removes the clinic and, through the store, its patients.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return db.Classify(err, msgNotFound, "Error deleting clinic")
	}
	return nil
}
