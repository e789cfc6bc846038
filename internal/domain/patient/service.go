package patient

import (
	"context"
	"time"

	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/schema"
	"github.com/medtrack/medtrack/internal/platform/validation"
	"github.com/medtrack/medtrack/pkg/datefmt"
)

const msgNotFound = "Patient not found"

type Service struct {
	repo    Repository
	tx      db.TxRunner
	parents db.RowChecker
	now     func() time.Time
}

func NewService(repo Repository, tx db.TxRunner, parents db.RowChecker) *Service {
	return &Service{repo: repo, tx: tx, parents: parents, now: time.Now}
}

// Create stores a new patient. When age is omitted it is derived from dob.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := db.RequireExists(ctx, s.parents, schema.TableDoctor, req.DoctorID); err != nil {
		return nil, err
	}
	if err := db.RequireExists(ctx, s.parents, schema.TableClinic, req.ClinicID); err != nil {
		return nil, err
	}

	p := &Patient{
		Name:     req.Name,
		Gender:   req.Gender,
		Contact:  req.Contact,
		DOB:      *req.DOB,
		Age:      req.Age,
		Address:  req.Address,
		Height:   req.Height,
		Weight:   req.Weight,
		Photo:    req.Photo,
		DoctorID: req.DoctorID,
		ClinicID: req.ClinicID,
	}
	if p.Age == nil {
		p.Age = s.ageOf(p.DOB)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, db.Classify(err, msgNotFound, "Error while creating patient")
	}
	return p, nil
}

func (s *Service) ageOf(dob datefmt.Date) *int {
	age := datefmt.AgeOn(dob, s.now())
	return &age
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching patient")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*Patient, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching patients")
	}
	return items, nil
}

func (s *Service) ListByClinic(ctx context.Context, clinicID int64) ([]*Patient, error) {
	return s.List(ctx, ListFilter{ClinicID: &clinicID})
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*Patient, error) {
	return s.List(ctx, ListFilter{DoctorID: &doctorID})
}

// Update merges the supplied fields. A changed doctorId or clinicId must
// reference an existing row. A new dob without an explicit age recomputes
// the age.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Patient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var out *Patient
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.DoctorID != nil && *req.DoctorID != p.DoctorID {
			if err := db.RequireExists(ctx, s.parents, schema.TableDoctor, *req.DoctorID); err != nil {
				return err
			}
			p.DoctorID = *req.DoctorID
		}
		if req.ClinicID != nil && *req.ClinicID != p.ClinicID {
			if err := db.RequireExists(ctx, s.parents, schema.TableClinic, *req.ClinicID); err != nil {
				return err
			}
			p.ClinicID = *req.ClinicID
		}
		applyPatch(p, req)
		if req.DOB != nil && req.Age == nil {
			p.Age = s.ageOf(p.DOB)
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error updating patient")
	}
	return out, nil
}

func applyPatch(p *Patient, req UpdateRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Contact != nil {
		p.Contact = *req.Contact
	}
	if req.DOB != nil {
		p.DOB = *req.DOB
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Address != nil {
		p.Address = req.Address
	}
	if req.Height != nil {
		p.Height = req.Height
	}
	if req.Weight != nil {
		p.Weight = req.Weight
	}
	if req.Photo != nil {
		p.Photo = req.Photo
	}
}

// Delete removes the patient together with its prescriptions and doses.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return db.Classify(err, msgNotFound, "Error deleting patient")
	}
	return nil
}
