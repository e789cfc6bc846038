package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const patientCols = `p.id, p.name, p.gender, p.contact, p.dob, p.age, p.address, p.height, p.weight, p.photo,
	p.doctor_id, p.clinic_id, p.created_at, p.updated_at`

const selectWithParents = `SELECT ` + patientCols + `,
	d.id, d.fullname, d.email, d.degree, d.phone_no,
	c.id, c.name, c.landline_no, c.doctor_name, c.address
	FROM patient p
	JOIN doctor d ON d.id = p.doctor_id
	JOIN clinic c ON c.id = p.clinic_id`

func (p *Patient) scanTargets() []interface{} {
	return []interface{}{&p.ID, &p.Name, &p.Gender, &p.Contact, &p.DOB, &p.Age, &p.Address, &p.Height, &p.Weight,
		&p.Photo, &p.DoctorID, &p.ClinicID, &p.CreatedAt, &p.UpdatedAt}
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(p.scanTargets()...); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPatientWithParents(row pgx.Row) (*Patient, error) {
	var p Patient
	var d DoctorRef
	var c ClinicRef
	targets := append(p.scanTargets(),
		&d.ID, &d.Fullname, &d.Email, &d.Degree, &d.PhoneNo,
		&c.ID, &c.Name, &c.LandlineNo, &c.DoctorName, &c.Address)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	p.Doctor = &d
	p.Clinic = &c
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (name, gender, contact, dob, age, address, height, weight, photo, doctor_id, clinic_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Gender, p.Contact, p.DOB, p.Age, p.Address, p.Height, p.Weight, p.Photo, p.DoctorID, p.ClinicID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatientWithParents(r.conn(ctx).QueryRow(ctx, selectWithParents+` WHERE p.id = $1`, id))
}

func (r *patientRepoPG) GetForUpdate(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient p WHERE p.id = $1 FOR UPDATE`, id))
}

func (r *patientRepoPG) List(ctx context.Context, f ListFilter) ([]*Patient, error) {
	var where []string
	var args []interface{}
	if f.DoctorID != nil {
		args = append(args, *f.DoctorID)
		where = append(where, fmt.Sprintf("p.doctor_id = $%d", len(args)))
	}
	if f.ClinicID != nil {
		args = append(args, *f.ClinicID)
		where = append(where, fmt.Sprintf("p.clinic_id = $%d", len(args)))
	}

	query := selectWithParents
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatientWithParents(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE patient SET name = $2, gender = $3, contact = $4, dob = $5, age = $6, address = $7,
			height = $8, weight = $9, photo = $10, doctor_id = $11, clinic_id = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Name, p.Gender, p.Contact, p.DOB, p.Age, p.Address, p.Height, p.Weight, p.Photo, p.DoctorID, p.ClinicID,
	).Scan(&p.UpdatedAt)
}

func (r *patientRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
