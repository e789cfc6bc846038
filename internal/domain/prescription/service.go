package prescription

import (
	"context"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/schema"
	"github.com/medtrack/medtrack/internal/platform/validation"
)

const (
	msgNotFound        = "Prescription not found"
	msgNoPrescriptions = "No prescriptions found for this patient"
)

// Service manages prescriptions and the doses that belong to them.
type Service struct {
	repo    Repository
	doses   DoseRepository
	tx      db.TxRunner
	parents db.RowChecker
}

func NewService(repo Repository, doses DoseRepository, tx db.TxRunner, parents db.RowChecker) *Service {
	return &Service{repo: repo, doses: doses, tx: tx, parents: parents}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Prescription, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := db.RequireExists(ctx, s.parents, schema.TablePatient, req.PatientID); err != nil {
		return nil, err
	}

	p := &Prescription{
		PatientID:     req.PatientID,
		Date:          *req.Date,
		Dieases:       req.Dieases,
		Symptoms:      req.Symptoms,
		PaymentMode:   req.PaymentMode,
		PaymentAmount: req.PaymentAmount,
		PaidAmount:    req.PaidAmount,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, db.Classify(err, msgNotFound, "Error creating prescription")
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Prescription, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching prescription")
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*Prescription, error) {
	items, err := s.repo.List(ctx, ListFilter{})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching prescriptions")
	}
	return items, nil
}

// ListByPatient returns the patient's prescriptions, newest first. A missing
// patient and a patient without prescriptions are both not-found errors.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Prescription, error) {
	if err := db.RequireExists(ctx, s.parents, schema.TablePatient, patientID); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx, ListFilter{PatientID: &patientID})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching prescriptions")
	}
	if len(items) == 0 {
		return nil, apperr.NotFound(msgNoPrescriptions)
	}
	return items, nil
}

// PatientPrescriptionsWithDoses returns the patient's prescriptions in the
// compact summary shape, each with its doses.
func (s *Service) PatientPrescriptionsWithDoses(ctx context.Context, patientID int64) (*PatientPrescriptions, error) {
	items, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	doses, err := s.doses.List(ctx, DoseFilter{PatientID: &patientID, OldestFirst: true})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error fetching doses")
	}

	out := &PatientPrescriptions{PatientID: patientID, Prescriptions: make([]*Summary, 0, len(items))}
	byID := make(map[int64]*Summary, len(items))
	for _, p := range items {
		sum := p.summary()
		byID[p.ID] = sum
		out.Prescriptions = append(out.Prescriptions, sum)
	}
	for _, d := range doses {
		sum, ok := byID[d.PresID]
		if !ok {
			continue
		}
		sum.Doses = append(sum.Doses, DoseSummary{
			ID:           d.ID,
			MedicineName: d.MedicineName,
			TimeOfDay:    d.TimeOfDay,
			MealTime:     d.MealTime,
		})
	}
	return out, nil
}

// Update merges the supplied fields. Moving the prescription to another
// patient requires that patient to exist.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Prescription, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var out *Prescription
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.PatientID != nil && *req.PatientID != p.PatientID {
			if err := db.RequireExists(ctx, s.parents, schema.TablePatient, *req.PatientID); err != nil {
				return err
			}
			p.PatientID = *req.PatientID
		}
		if req.Date != nil {
			p.Date = *req.Date
		}
		if req.Dieases != nil {
			p.Dieases = *req.Dieases
		}
		if req.Symptoms != nil {
			p.Symptoms = *req.Symptoms
		}
		if req.PaymentMode != nil {
			p.PaymentMode = *req.PaymentMode
		}
		if req.PaymentAmount != nil {
			p.PaymentAmount = req.PaymentAmount
		}
		if req.PaidAmount != nil {
			p.PaidAmount = req.PaidAmount
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, msgNotFound, "Error updating prescription")
	}
	return out, nil
}

// Delete removes the prescription and its doses.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return db.Classify(err, msgNotFound, "Error deleting prescription")
	}
	return nil
}
