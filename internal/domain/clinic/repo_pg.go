package clinic

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type clinicRepoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &clinicRepoPG{pool: pool}
}

func (r *clinicRepoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const clinicCols = `c.id, c.name, c.landline_no, c.doctor_name, c.address, c.price_per_day, c.doctor_id, c.created_at, c.updated_at`

const selectWithDoctor = `SELECT ` + clinicCols + `, d.id, d.fullname, d.email, d.degree, d.phone_no
	FROM clinic c JOIN doctor d ON d.id = c.doctor_id`

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic
	err := row.Scan(&c.ID, &c.Name, &c.LandlineNo, &c.DoctorName, &c.Address, &c.PricePerDay,
		&c.DoctorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClinicWithDoctor(row pgx.Row) (*Clinic, error) {
	var c Clinic
	var d DoctorRef
	err := row.Scan(&c.ID, &c.Name, &c.LandlineNo, &c.DoctorName, &c.Address, &c.PricePerDay,
		&c.DoctorID, &c.CreatedAt, &c.UpdatedAt,
		&d.ID, &d.Fullname, &d.Email, &d.Degree, &d.PhoneNo)
	if err != nil {
		return nil, err
	}
	c.Doctor = &d
	return &c, nil
}

func (r *clinicRepoPG) Create(ctx context.Context, c *Clinic) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO clinic (name, landline_no, doctor_name, address, price_per_day, doctor_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		c.Name, c.LandlineNo, c.DoctorName, c.Address, c.PricePerDay, c.DoctorID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *clinicRepoPG) GetByID(ctx context.Context, id int64) (*Clinic, error) {
	return scanClinicWithDoctor(r.conn(ctx).QueryRow(ctx, selectWithDoctor+` WHERE c.id = $1`, id))
}

func (r *clinicRepoPG) GetForUpdate(ctx context.Context, id int64) (*Clinic, error) {
	return scanClinic(r.conn(ctx).QueryRow(ctx, `SELECT `+clinicCols+` FROM clinic c WHERE c.id = $1 FOR UPDATE`, id))
}

func (r *clinicRepoPG) List(ctx context.Context, f ListFilter) ([]*Clinic, error) {
	query := selectWithDoctor
	var args []interface{}
	if f.DoctorID != nil {
		query += ` WHERE c.doctor_id = $1`
		args = append(args, *f.DoctorID)
	}
	query += ` ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Clinic{}
	for rows.Next() {
		c, err := scanClinicWithDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *clinicRepoPG) Update(ctx context.Context, c *Clinic) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE clinic SET name = $2, landline_no = $3, doctor_name = $4, address = $5,
			price_per_day = $6, doctor_id = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Name, c.LandlineNo, c.DoctorName, c.Address, c.PricePerDay, c.DoctorID,
	).Scan(&c.UpdatedAt)
}

func (r *clinicRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM clinic WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
