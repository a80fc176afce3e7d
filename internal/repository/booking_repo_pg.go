package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/styledecor/styledecor/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Booking, error)
	ListByDecorator(ctx context.Context, decoratorID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentState) ([]domain.Booking, error)
	// Assign writes decorator id and assigned status together; there is no
	// intermediate visible state.
	Assign(ctx context.Context, bookingID, decoratorID int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	// UpdateOnSiteStage writes the stage and, when complete is set, forces
	// the coarse status to completed in the same statement.
	UpdateOnSiteStage(ctx context.Context, id int64, stage domain.OnSiteStage, complete bool) (*domain.Booking, error)
	// MarkPaid sets payment_status=paid and promotes pending to confirmed,
	// leaving any other status untouched.
	MarkPaid(ctx context.Context, id int64) (*domain.Booking, error)
	DemandByService(ctx context.Context) ([]domain.ServiceDemand, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, account_id, service_id, date, location, status, payment_status, decorator_id, on_site_stage, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	var stage *string
	if err := row.Scan(&b.ID, &b.AccountID, &b.ServiceID, &b.Date, &b.Location, &b.Status, &b.PaymentStatus, &b.DecoratorID, &stage, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if stage != nil {
		b.OnSiteStage = domain.OnSiteStage(*stage)
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (account_id, service_id, date, location, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		booking.AccountID, booking.ServiceID, booking.Date, booking.Location, booking.Status, booking.PaymentStatus).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	return mapPgErr(err, "booking not found", "booking already exists")
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, mapPgErr(err, "booking not found", "")
	}
	return b, nil
}

func (r *PGBookingRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE account_id=$1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByDecorator(ctx context.Context, decoratorID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE decorator_id=$1 ORDER BY date ASC`, decoratorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context, status domain.BookingStatus, paymentStatus domain.PaymentState) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ($1 = '' OR status = $1) AND ($2 = '' OR payment_status = $2) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, string(status), string(paymentStatus))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) Assign(ctx context.Context, bookingID, decoratorID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET decorator_id=$1, status=$2, updated_at=now() WHERE id=$3 RETURNING `+bookingColumns,
		decoratorID, domain.BookingStatusAssigned, bookingID)
	b, err := scanBooking(row)
	if err != nil {
		return nil, mapPgErr(err, "booking not found", "")
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, mapPgErr(err, "booking not found", "")
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateOnSiteStage(ctx context.Context, id int64, stage domain.OnSiteStage, complete bool) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings
		SET on_site_stage=$1,
			status = CASE WHEN $2 THEN 'completed' ELSE status END,
			updated_at=now()
		WHERE id=$3
		RETURNING `+bookingColumns, string(stage), complete, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, mapPgErr(err, "booking not found", "")
	}
	return b, nil
}

func (r *PGBookingRepository) MarkPaid(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings
		SET payment_status=$1,
			status = CASE WHEN status = 'pending' THEN 'confirmed' ELSE status END,
			updated_at=now()
		WHERE id=$2
		RETURNING `+bookingColumns, domain.PaymentStatePaid, id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, mapPgErr(err, "booking not found", "")
	}
	return b, nil
}

func (r *PGBookingRepository) DemandByService(ctx context.Context) ([]domain.ServiceDemand, error) {
	rows, err := r.db.Query(ctx, `SELECT s.id, s.name, s.category,
			count(b.id) AS booking_count,
			count(b.id) FILTER (WHERE b.status = 'completed') AS completed_count
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		GROUP BY s.id, s.name, s.category
		ORDER BY booking_count DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	demand := make([]domain.ServiceDemand, 0)
	for rows.Next() {
		var d domain.ServiceDemand
		if err := rows.Scan(&d.ServiceID, &d.ServiceName, &d.Category, &d.BookingCount, &d.CompletedCount); err != nil {
			return nil, err
		}
		demand = append(demand, d)
	}
	return demand, rows.Err()
}

func collectBookings(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
