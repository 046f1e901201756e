package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/studio609/Studio-BookingService/internal/domain"
	"github.com/studio609/Studio-BookingService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий записей бронирования (ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись бронирования
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_ref",
			"booking_date",
			"summary",
			"notes",
			"calendar_href",
			"checkout_session_id",
			"payment_intent_id",
			"amount_minor",
			"currency",
			"status",
		).
		Values(
			b.Ref,
			b.Date.Start(time.UTC),
			b.Summary,
			b.Notes,
			b.CalendarHref,
			b.CheckoutSessionID,
			b.PaymentIntentID,
			b.AmountMinor,
			b.Currency,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateRef
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByRef получает запись бронирования по её reference
func (r *Repository) GetByRef(ctx context.Context, ref string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"booking_ref",
		"booking_date",
		"summary",
		"notes",
		"calendar_href",
		"checkout_session_id",
		"payment_intent_id",
		"amount_minor",
		"currency",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"booking_ref": ref}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	var bookingDate time.Time
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.Ref,
		&bookingDate,
		&b.Summary,
		&b.Notes,
		&b.CalendarHref,
		&b.CheckoutSessionID,
		&b.PaymentIntentID,
		&b.AmountMinor,
		&b.Currency,
		&b.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - scan row: %v", ErrScanRow, err)
	}

	b.Date = domain.NewDay(bookingDate)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// UpdateStatus переводит запись бронирования в новый статус
func (r *Repository) UpdateStatus(ctx context.Context, ref string, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_ref": ref}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// SetPaymentIntent фиксирует payment intent и переводит запись в новый статус
func (r *Repository) SetPaymentIntent(ctx context.Context, ref, paymentIntentID string, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_intent_id", paymentIntentID).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_ref": ref}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentIntent - build update query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentIntent - execute update: %v", ErrExecQuery, err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
