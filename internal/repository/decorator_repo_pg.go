package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/styledecor/styledecor/internal/domain"
)

type DecoratorRepository interface {
	Create(ctx context.Context, decorator *domain.Decorator) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Decorator, error)
	// GetByAccount returns (nil, nil) when the account has no profile.
	GetByAccount(ctx context.Context, accountID int64) (*domain.Decorator, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DecoratorStatus) (*domain.Decorator, error)
	List(ctx context.Context) ([]domain.Decorator, error)
	TopRated(ctx context.Context, limit int) ([]domain.Decorator, error)
}

type PGDecoratorRepository struct {
	db *pgxpool.Pool
}

func NewDecoratorRepository(db *pgxpool.Pool) DecoratorRepository {
	return &PGDecoratorRepository{db: db}
}

const decoratorColumns = `id, account_id, specialties, rating, status, created_at, updated_at`

func scanDecorator(row interface{ Scan(dest ...any) error }) (*domain.Decorator, error) {
	var d domain.Decorator
	if err := row.Scan(&d.ID, &d.AccountID, &d.Specialties, &d.Rating, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGDecoratorRepository) Create(ctx context.Context, decorator *domain.Decorator) error {
	err := r.db.QueryRow(ctx, `INSERT INTO decorators (account_id, specialties, rating, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		decorator.AccountID, decorator.Specialties, decorator.Rating, decorator.Status).
		Scan(&decorator.ID, &decorator.CreatedAt, &decorator.UpdatedAt)
	return mapPgErr(err, "decorator not found", "decorator profile already exists for this account")
}

func (r *PGDecoratorRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM decorators WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.E(domain.KindNotFound, "decorator not found")
	}
	return nil
}

func (r *PGDecoratorRepository) GetByID(ctx context.Context, id int64) (*domain.Decorator, error) {
	row := r.db.QueryRow(ctx, `SELECT `+decoratorColumns+` FROM decorators WHERE id=$1`, id)
	d, err := scanDecorator(row)
	if err != nil {
		return nil, mapPgErr(err, "decorator not found", "")
	}
	return d, nil
}

func (r *PGDecoratorRepository) GetByAccount(ctx context.Context, accountID int64) (*domain.Decorator, error) {
	row := r.db.QueryRow(ctx, `SELECT `+decoratorColumns+` FROM decorators WHERE account_id=$1`, accountID)
	d, err := scanDecorator(row)
	if err != nil {
		if domain.IsKind(mapPgErr(err, "decorator not found", ""), domain.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *PGDecoratorRepository) UpdateStatus(ctx context.Context, id int64, status domain.DecoratorStatus) (*domain.Decorator, error) {
	row := r.db.QueryRow(ctx, `UPDATE decorators SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+decoratorColumns, status, id)
	d, err := scanDecorator(row)
	if err != nil {
		return nil, mapPgErr(err, "decorator not found", "")
	}
	return d, nil
}

func (r *PGDecoratorRepository) List(ctx context.Context) ([]domain.Decorator, error) {
	rows, err := r.db.Query(ctx, `SELECT d.id, d.account_id, d.specialties, d.rating, d.status, d.created_at, d.updated_at,
			a.id, a.subject_id, a.name, a.email, a.role, a.image, a.created_at, a.updated_at
		FROM decorators d
		JOIN accounts a ON a.id = d.account_id
		ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decorators := make([]domain.Decorator, 0)
	for rows.Next() {
		var d domain.Decorator
		var a domain.Account
		if err := rows.Scan(&d.ID, &d.AccountID, &d.Specialties, &d.Rating, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&a.ID, &a.SubjectID, &a.Name, &a.Email, &a.Role, &a.Image, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		d.Account = &a
		decorators = append(decorators, d)
	}
	return decorators, rows.Err()
}

func (r *PGDecoratorRepository) TopRated(ctx context.Context, limit int) ([]domain.Decorator, error) {
	rows, err := r.db.Query(ctx, `SELECT d.id, d.account_id, d.specialties, d.rating, d.status, d.created_at, d.updated_at,
			a.id, a.subject_id, a.name, a.email, a.role, a.image, a.created_at, a.updated_at
		FROM decorators d
		JOIN accounts a ON a.id = d.account_id
		WHERE d.status = $1
		ORDER BY d.rating DESC
		LIMIT $2`, domain.DecoratorStatusApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decorators := make([]domain.Decorator, 0)
	for rows.Next() {
		var d domain.Decorator
		var a domain.Account
		if err := rows.Scan(&d.ID, &d.AccountID, &d.Specialties, &d.Rating, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&a.ID, &a.SubjectID, &a.Name, &a.Email, &a.Role, &a.Image, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		d.Account = &a
		decorators = append(decorators, d)
	}
	return decorators, rows.Err()
}

var _ DecoratorRepository = (*PGDecoratorRepository)(nil)
