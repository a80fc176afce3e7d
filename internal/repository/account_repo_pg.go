package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/styledecor/styledecor/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetBySubject(ctx context.Context, subjectID string) (*domain.Account, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
}

type PGAccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) AccountRepository {
	return &PGAccountRepository{db: db}
}

const accountColumns = `id, subject_id, name, email, role, image, created_at, updated_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.SubjectID, &a.Name, &a.Email, &a.Role, &a.Image, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.db.QueryRow(ctx, `INSERT INTO accounts (subject_id, name, email, role, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		account.SubjectID, account.Name, account.Email, account.Role, account.Image).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	return mapPgErr(err, "account not found", "an account with this email already exists")
}

func (r *PGAccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapPgErr(err, "account not found", "")
	}
	return a, nil
}

func (r *PGAccountRepository) GetBySubject(ctx context.Context, subjectID string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE subject_id=$1`, subjectID)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapPgErr(err, "account not found", "")
	}
	return a, nil
}

func (r *PGAccountRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `UPDATE accounts SET role=$1, updated_at=now() WHERE id=$2 RETURNING `+accountColumns, role, id)
	a, err := scanAccount(row)
	if err != nil {
		return nil, mapPgErr(err, "account not found", "")
	}
	return a, nil
}

func (r *PGAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

var _ AccountRepository = (*PGAccountRepository)(nil)
