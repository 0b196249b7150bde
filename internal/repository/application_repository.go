package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/onboarding-api/internal/domain"
)

// ApplicationRepository encapsulates onboarding application persistence.
// Lookups that match nothing return pgx.ErrNoRows.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	List(ctx context.Context) ([]domain.Application, error)
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error)
	Delete(ctx context.Context, id int64) error
}

const applicationColumns = `id, user_id, first_name, last_name, email, product_type, status, created_at, updated_at`

type applicationRepository struct {
	db DBTX
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(db DBTX) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (user_id, first_name, last_name, email, product_type, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		app.UserID,
		app.FirstName,
		app.LastName,
		app.Email,
		app.ProductType,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	const query = `SELECT ` + applicationColumns + `
        FROM applications ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	const query = `SELECT ` + applicationColumns + `
        FROM applications WHERE id=$1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	const query = `
        UPDATE applications SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + applicationColumns
	return scanApplication(r.db.QueryRow(ctx, query, status, id))
}

func (r *applicationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	if err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.FirstName,
		&app.LastName,
		&app.Email,
		&app.ProductType,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func scanApplications(rows pgx.Rows) ([]domain.Application, error) {
	result := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}
