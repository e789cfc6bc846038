package prescription

import (
	"context"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/schema"
	"github.com/medtrack/medtrack/internal/platform/validation"
)

const (
	msgDoseNotFound = "Dose not found"
	msgNoDoses      = "No doses found for this prescription"
)

// CreateDose adds a dose to an existing prescription. medicine_type defaults
// to capsule and quantity to 1.
func (s *Service) CreateDose(ctx context.Context, req CreateDoseRequest) (*Dose, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := db.RequireExists(ctx, s.parents, schema.TablePrescription, req.PresID); err != nil {
		return nil, err
	}

	d := &Dose{
		PresID:       req.PresID,
		Days:         req.Days,
		MedicineType: defaultMedicineType,
		MedicineName: req.MedicineName,
		TimeOfDay:    req.TimeOfDay,
		MealTime:     req.MealTime,
		Quantity:     defaultQuantity,
	}
	if req.MedicineType != nil {
		d.MedicineType = *req.MedicineType
	}
	if req.Quantity != nil {
		d.Quantity = *req.Quantity
	}
	if err := s.doses.Create(ctx, d); err != nil {
		return nil, db.Classify(err, msgDoseNotFound, "Error creating dose")
	}
	return d, nil
}

func (s *Service) GetDose(ctx context.Context, id int64) (*Dose, error) {
	d, err := s.doses.GetByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, msgDoseNotFound, "Error fetching dose")
	}
	return d, nil
}

// ListDoses returns doses newest first, optionally for one prescription.
func (s *Service) ListDoses(ctx context.Context, presID *int64) ([]*Dose, error) {
	items, err := s.doses.List(ctx, DoseFilter{PresID: presID})
	if err != nil {
		return nil, db.Classify(err, msgDoseNotFound, "Error fetching doses")
	}
	return items, nil
}

// ListDosesByPrescription returns a prescription's doses oldest first. No
// doses is a not-found error.
func (s *Service) ListDosesByPrescription(ctx context.Context, presID int64) ([]*Dose, error) {
	items, err := s.doses.List(ctx, DoseFilter{PresID: &presID, OldestFirst: true})
	if err != nil {
		return nil, db.Classify(err, msgDoseNotFound, "Error fetching doses")
	}
	if len(items) == 0 {
		return nil, apperr.NotFound(msgNoDoses)
	}
	return items, nil
}

func (s *Service) UpdateDose(ctx context.Context, id int64, req UpdateDoseRequest) (*Dose, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var out *Dose
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		d, err := s.doses.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.PresID != nil && *req.PresID != d.PresID {
			if err := db.RequireExists(ctx, s.parents, schema.TablePrescription, *req.PresID); err != nil {
				return err
			}
			d.PresID = *req.PresID
		}
		if req.Days != nil {
			d.Days = *req.Days
		}
		if req.MedicineType != nil {
			d.MedicineType = *req.MedicineType
		}
		if req.MedicineName != nil {
			d.MedicineName = *req.MedicineName
		}
		if req.TimeOfDay != nil {
			d.TimeOfDay = *req.TimeOfDay
		}
		if req.MealTime != nil {
			d.MealTime = *req.MealTime
		}
		if req.Quantity != nil {
			d.Quantity = *req.Quantity
		}
		if err := s.doses.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, msgDoseNotFound, "Error updating dose")
	}
	return out, nil
}

func (s *Service) DeleteDose(ctx context.Context, id int64) error {
	if err := s.doses.Delete(ctx, id); err != nil {
		return db.Classify(err, msgDoseNotFound, "Error deleting dose")
	}
	return nil
}
