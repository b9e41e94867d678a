package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/dbmetrics"
	"github.com/abhi96256/Appoinment/pkg/pgerrors"
	"github.com/abhi96256/Appoinment/pkg/psqlbuilder"
)

// Имена ограничений из migrations/001_init.sql
const (
	constraintConfirmedSlot    = "bookings_confirmed_slot_uniq"
	constraintConfirmationCode = "bookings_confirmation_code_key"
)

var bookingColumns = []string{
	"b.id",
	"b.service_id",
	"b.customer_name",
	"b.customer_email",
	"b.customer_phone",
	"b.booking_date",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.notes",
	"b.confirmation_code",
	"b.created_at",
	"b.updated_at",
}

var serviceColumns = []string{
	"s.name",
	"s.duration",
	"s.price",
	"s.description",
	"s.is_active",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Нарушение уникального индекса подтверждённого слота возвращается как ErrSlotNotAvailable,
// коллизия кода подтверждения как ErrDuplicateConfirmationCode.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"notes",
			"confirmation_code",
		).
		Values(
			booking.ServiceID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Notes,
			booking.ConfirmationCode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, classifyWriteError("Create", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID вместе с услугой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectWithService().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows, true)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// GetConfirmedByDate получает подтверждённые бронирования на дату, отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка доступности и вставка
// выполнялись атомарно.
func (r *Repository) GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{
			"b.booking_date": date.Format(domain.DateFormat),
			"b.status":       domain.StatusConfirmed,
		}).
		OrderBy("b.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: GetConfirmedByDate: %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: GetConfirmedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows, false)
}

// GetCompletedForReview получает завершённое бронирование клиента для указанной услуги.
// Используется при проверке права оставить отзыв
func (r *Repository) GetCompletedForReview(ctx context.Context, bookingID, serviceID int64, email string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{
			"b.id":             bookingID,
			"b.service_id":     serviceID,
			"b.customer_email": email,
			"b.status":         domain.StatusCompleted,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCompletedForReview - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCompletedForReview - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows, false)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// List получает бронирования с фильтрацией и пагинацией.
// Сортировка: booking_date DESC, start_time ASC
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(selectWithService(), filter).
		OrderBy("b.booking_date DESC", "b.start_time ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows, true)
}

// Count количество бронирований под фильтром (без учёта Limit/Offset)
func (r *Repository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings b"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("UpdateStatus", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func selectWithService() squirrel.SelectBuilder {
	columns := make([]string, 0, len(bookingColumns)+len(serviceColumns))
	columns = append(columns, bookingColumns...)
	columns = append(columns, serviceColumns...)

	return psqlbuilder.Select(columns...).
		From("bookings b").
		Join("services s ON s.id = b.service_id")
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.customer_email": *filter.CustomerEmail})
	}
	return selectBuilder
}

// classifyWriteError переводит ошибки PostgreSQL в ошибки репозитория
func classifyWriteError(op string, err error) error {
	if constraint, ok := pgerrors.UniqueViolation(err); ok {
		switch constraint {
		case constraintConfirmedSlot:
			return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
		case constraintConfirmationCode:
			return fmt.Errorf("%w: %s: %v", ErrDuplicateConfirmationCode, op, err)
		}
	}
	if pgerrors.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows, withService bool) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var notes sql.NullString
		var createdAt, updatedAt sql.NullTime

		dest := []interface{}{
			&booking.ID,
			&booking.ServiceID,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.CustomerPhone,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&notes,
			&booking.ConfirmationCode,
			&createdAt,
			&updatedAt,
		}

		var service domain.Service
		var description sql.NullString
		if withService {
			dest = append(dest,
				&service.Name,
				&service.DurationMinutes,
				&service.Price,
				&description,
				&service.IsActive,
			)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if notes.Valid {
			booking.Notes = &notes.String
		}
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		if withService {
			service.ID = booking.ServiceID
			if description.Valid {
				service.Description = &description.String
			}
			booking.Service = &service
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
