package prescription

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type doseRepoPG struct {
	pool *pgxpool.Pool
}

func NewDoseRepo(pool *pgxpool.Pool) DoseRepository {
	return &doseRepoPG{pool: pool}
}

func (r *doseRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const doseCols = `ds.id, ds.pres_id, ds.days, ds.medicine_type, ds.medicine_name, ds.time_of_day, ds.meal_time,
	ds.quantity, ds.created_at, ds.updated_at`

const selectWithPrescription = `SELECT ` + doseCols + `,
	pr.id, pr.date, pr.dieases, pr.symptoms
	FROM prescription_dose ds
	JOIN prescription pr ON pr.id = ds.pres_id`

func (d *Dose) scanTargets() []interface{} {
	return []interface{}{&d.ID, &d.PresID, &d.Days, &d.MedicineType, &d.MedicineName, &d.TimeOfDay, &d.MealTime,
		&d.Quantity, &d.CreatedAt, &d.UpdatedAt}
}

func scanDose(row pgx.Row) (*Dose, error) {
	var d Dose
	if err := row.Scan(d.scanTargets()...); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanDoseWithPrescription(row pgx.Row) (*Dose, error) {
	var d Dose
	var pr PrescriptionRef
	targets := append(d.scanTargets(), &pr.ID, &pr.Date, &pr.Dieases, &pr.Symptoms)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	d.Prescription = &pr
	return &d, nil
}

func (r *doseRepoPG) Create(ctx context.Context, d *Dose) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescription_dose (pres_id, days, medicine_type, medicine_name, time_of_day, meal_time, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		d.PresID, d.Days, d.MedicineType, d.MedicineName, d.TimeOfDay, d.MealTime, d.Quantity,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *doseRepoPG) GetByID(ctx context.Context, id int64) (*Dose, error) {
	return scanDoseWithPrescription(r.conn(ctx).QueryRow(ctx, selectWithPrescription+` WHERE ds.id = $1`, id))
}

func (r *doseRepoPG) GetForUpdate(ctx context.Context, id int64) (*Dose, error) {
	return scanDose(r.conn(ctx).QueryRow(ctx,
		`SELECT `+doseCols+` FROM prescription_dose ds WHERE ds.id = $1 FOR UPDATE`, id))
}

func (r *doseRepoPG) List(ctx context.Context, f DoseFilter) ([]*Dose, error) {
	var where []string
	var args []interface{}
	if f.PresID != nil {
		args = append(args, *f.PresID)
		where = append(where, fmt.Sprintf("ds.pres_id = $%d", len(args)))
	}
	if f.PatientID != nil {
		args = append(args, *f.PatientID)
		where = append(where, fmt.Sprintf("pr.patient_id = $%d", len(args)))
	}

	query := selectWithPrescription
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.OldestFirst {
		query += " ORDER BY ds.created_at ASC, ds.id ASC"
	} else {
		query += " ORDER BY ds.created_at DESC, ds.id DESC"
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Dose{}
	for rows.Next() {
		d, err := scanDoseWithPrescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *doseRepoPG) Update(ctx context.Context, d *Dose) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE prescription_dose SET pres_id = $2, days = $3, medicine_type = $4, medicine_name = $5,
			time_of_day = $6, meal_time = $7, quantity = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		d.ID, d.PresID, d.Days, d.MedicineType, d.MedicineName, d.TimeOfDay, d.MealTime, d.Quantity,
	).Scan(&d.UpdatedAt)
}

func (r *doseRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescription_dose WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
