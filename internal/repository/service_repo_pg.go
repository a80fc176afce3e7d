package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/styledecor/styledecor/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, category string) ([]domain.Service, error)
}

type PGServiceRepository struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) ServiceRepository {
	return &PGServiceRepository{db: db}
}

const serviceColumns = `id, name, cost, unit, category, description, created_by_email, image, created_at, updated_at`

func scanService(row interface{ Scan(dest ...any) error }) (*domain.Service, error) {
	var s domain.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Cost, &s.Unit, &s.Category, &s.Description, &s.CreatedByEmail, &s.Image, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGServiceRepository) Create(ctx context.Context, service *domain.Service) error {
	err := r.db.QueryRow(ctx, `INSERT INTO services (name, cost, unit, category, description, created_by_email, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		service.Name, service.Cost, service.Unit, service.Category, service.Description, service.CreatedByEmail, service.Image).
		Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
	return mapPgErr(err, "service not found", "service already exists")
}

func (r *PGServiceRepository) Update(ctx context.Context, service *domain.Service) error {
	err := r.db.QueryRow(ctx, `UPDATE services SET name=$1, cost=$2, unit=$3, category=$4, description=$5, image=$6, updated_at=now()
		WHERE id=$7
		RETURNING updated_at`,
		service.Name, service.Cost, service.Unit, service.Category, service.Description, service.Image, service.ID).
		Scan(&service.UpdatedAt)
	return mapPgErr(err, "service not found", "")
}

func (r *PGServiceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.E(domain.KindNotFound, "service not found")
	}
	return nil
}

func (r *PGServiceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id=$1`, id)
	s, err := scanService(row)
	if err != nil {
		return nil, mapPgErr(err, "service not found", "")
	}
	return s, nil
}

func (r *PGServiceRepository) List(ctx context.Context, category string) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services`
	args := []any{}
	if category != "" {
		query += ` WHERE category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *s)
	}
	return services, rows.Err()
}

var _ ServiceRepository = (*PGServiceRepository)(nil)
