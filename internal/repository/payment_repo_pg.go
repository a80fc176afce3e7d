package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/styledecor/styledecor/internal/domain"
)

type PaymentRepository interface {
	// Create persists a new intent record. The partial unique index on
	// active records per booking surfaces concurrent creation as Conflict.
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	// FindActiveByBooking returns (nil, nil) when no pending or succeeded
	// record exists for the booking.
	FindActiveByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error)
	// UpdateIntent overwrites the external intent id and amount of an
	// existing record (self-heal after provider drift).
	UpdateIntent(ctx context.Context, id int64, intentID string, amountCents int64) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error)
	ListSucceeded(ctx context.Context, from, to *time.Time) ([]domain.Payment, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

const paymentColumns = `id, booking_id, account_id, amount_cents, provider_intent_id, status, created_at, updated_at`

func scanPayment(row interface{ Scan(dest ...any) error }) (*domain.Payment, error) {
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.BookingID, &p.AccountID, &p.AmountCents, &p.ProviderIntentID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	err := r.db.QueryRow(ctx, `INSERT INTO payments (booking_id, account_id, amount_cents, provider_intent_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		payment.BookingID, payment.AccountID, payment.AmountCents, payment.ProviderIntentID, payment.Status).
		Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	return mapPgErr(err, "payment not found", "an active payment already exists for this booking")
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)
	p, err := scanPayment(row)
	if err != nil {
		return nil, mapPgErr(err, "payment record not found", "")
	}
	return p, nil
}

func (r *PGPaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE provider_intent_id=$1`, intentID)
	p, err := scanPayment(row)
	if err != nil {
		return nil, mapPgErr(err, "payment record not found", "")
	}
	return p, nil
}

func (r *PGPaymentRepository) FindActiveByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE booking_id=$1 AND status IN ($2, $3)`,
		bookingID, domain.PaymentStatusPending, domain.PaymentStatusSucceeded)
	p, err := scanPayment(row)
	if err != nil {
		if domain.IsKind(mapPgErr(err, "payment record not found", ""), domain.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PGPaymentRepository) UpdateIntent(ctx context.Context, id int64, intentID string, amountCents int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `UPDATE payments SET provider_intent_id=$1, amount_cents=$2, updated_at=now() WHERE id=$3 RETURNING `+paymentColumns,
		intentID, amountCents, id)
	p, err := scanPayment(row)
	if err != nil {
		return nil, mapPgErr(err, "payment record not found", "payment intent id already in use")
	}
	return p, nil
}

func (r *PGPaymentRepository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `UPDATE payments SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+paymentColumns, status, id)
	p, err := scanPayment(row)
	if err != nil {
		return nil, mapPgErr(err, "payment record not found", "")
	}
	return p, nil
}

func (r *PGPaymentRepository) ListSucceeded(ctx context.Context, from, to *time.Time) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE status = $1
			AND ($2::timestamptz IS NULL OR created_at >= $2)
			AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at`,
		domain.PaymentStatusSucceeded, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
