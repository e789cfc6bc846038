package prescription

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type prescriptionRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const prescriptionCols = `pr.id, pr.patient_id, pr.date, pr.dieases, pr.symptoms, pr.payment_mode,
	pr.payment_amount, pr.paid_amount, pr.created_at, pr.updated_at`

const selectWithPatient = `SELECT ` + prescriptionCols + `,
	pa.id, pa.name, pa.age, pa.gender, pa.contact
	FROM prescription pr
	JOIN patient pa ON pa.id = pr.patient_id`

func (p *Prescription) scanTargets() []interface{} {
	return []interface{}{&p.ID, &p.PatientID, &p.Date, &p.Dieases, &p.Symptoms, &p.PaymentMode,
		&p.PaymentAmount, &p.PaidAmount, &p.CreatedAt, &p.UpdatedAt}
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	if err := row.Scan(p.scanTargets()...); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPrescriptionWithPatient(row pgx.Row) (*Prescription, error) {
	var p Prescription
	var pa PatientRef
	targets := append(p.scanTargets(), &pa.ID, &pa.Name, &pa.Age, &pa.Gender, &pa.Contact)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	p.Patient = &pa
	return &p, nil
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prescription (patient_id, date, dieases, symptoms, payment_mode, payment_amount, paid_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		p.PatientID, p.Date, p.Dieases, p.Symptoms, p.PaymentMode, p.PaymentAmount, p.PaidAmount,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id int64) (*Prescription, error) {
	return scanPrescriptionWithPatient(r.conn(ctx).QueryRow(ctx, selectWithPatient+` WHERE pr.id = $1`, id))
}

func (r *prescriptionRepoPG) GetForUpdate(ctx context.Context, id int64) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx,
		`SELECT `+prescriptionCols+` FROM prescription pr WHERE pr.id = $1 FOR UPDATE`, id))
}

func (r *prescriptionRepoPG) List(ctx context.Context, f ListFilter) ([]*Prescription, error) {
	query := selectWithPatient
	var args []interface{}
	if f.PatientID != nil {
		query += ` WHERE pr.patient_id = $1`
		args = append(args, *f.PatientID)
	}
	query += ` ORDER BY pr.created_at DESC, pr.id DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Prescription{}
	for rows.Next() {
		p, err := scanPrescriptionWithPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *prescriptionRepoPG) Update(ctx context.Context, p *Prescription) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE prescription SET patient_id = $2, date = $3, dieases = $4, symptoms = $5, payment_mode = $6,
			payment_amount = $7, paid_amount = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.PatientID, p.Date, p.Dieases, p.Symptoms, p.PaymentMode, p.PaymentAmount, p.PaidAmount,
	).Scan(&p.UpdatedAt)
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescription WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
