package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/dbmetrics"
	"github.com/abhi96256/Appoinment/pkg/pgerrors"
	"github.com/abhi96256/Appoinment/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"r.id",
	"r.service_id",
	"r.booking_id",
	"r.customer_name",
	"r.customer_email",
	"r.rating",
	"r.comment",
	"r.is_verified",
	"r.is_approved",
	"r.created_at",
	"r.updated_at",
	"s.name",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв. Повторный отзыв на то же бронирование возвращает ErrReviewExists
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"service_id",
			"booking_id",
			"customer_name",
			"customer_email",
			"rating",
			"comment",
			"is_verified",
			"is_approved",
		).
		Values(
			review.ServiceID,
			review.BookingID,
			review.CustomerName,
			review.CustomerEmail,
			review.Rating,
			review.Comment,
			review.IsVerified,
			review.IsApproved,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt, &updatedAt)
	if err != nil {
		if _, ok := pgerrors.UniqueViolation(err); ok {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return review, nil
}

// GetByID получает отзыв по ID вместе с названием услуги
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews r").
		Join("services s ON s.id = r.service_id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews, err := scanReviews(rows, "GetByID")
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrReviewNotFound
	}

	return reviews[0], nil
}

// ExistsForBooking true, если на бронирование уже оставлен отзыв
func (r *Repository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// List отзывы под фильтром, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.ReviewsFilter) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(
		psqlbuilder.Select(reviewColumns...).
			From("reviews r").
			Join("services s ON s.id = r.service_id"),
		filter,
	).OrderBy("r.created_at DESC")

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

	return scanReviews(rows, "List")
}

// Count количество отзывов под фильтром
func (r *Repository) Count(ctx context.Context, filter domain.ReviewsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("reviews r"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: Count - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// RatingCounts количество одобренных отзывов услуги по каждой оценке
func (r *Repository) RatingCounts(ctx context.Context, serviceID int64) (map[int]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"service_id": serviceID, "is_approved": true}).
		GroupBy("rating").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: RatingCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: RatingCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, fmt.Errorf("%w: RatingCounts - scan row: %v", ErrScanRow, err)
		}
		counts[rating] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: RatingCounts - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// SetApproved меняет признак модерации
func (r *Repository) SetApproved(ctx context.Context, id int64, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("is_approved", approved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetApproved - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "SetApproved", query, args)
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.ReviewsFilter) squirrel.SelectBuilder {
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.service_id": *filter.ServiceID})
	}
	if filter.Rating != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.rating": *filter.Rating})
	}
	if filter.IsApproved != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.is_approved": *filter.IsApproved})
	}
	return selectBuilder
}

func scanReviews(rows *sql.Rows, op string) ([]*domain.Review, error) {
	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var comment sql.NullString
		var createdAt, updatedAt sql.NullTime
		var serviceName string

		err := rows.Scan(
			&review.ID,
			&review.ServiceID,
			&review.BookingID,
			&review.CustomerName,
			&review.CustomerEmail,
			&review.Rating,
			&comment,
			&review.IsVerified,
			&review.IsApproved,
			&createdAt,
			&updatedAt,
			&serviceName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		if comment.Valid {
			review.Comment = &comment.String
		}
		review.CreatedAt = createdAt.Time
		review.UpdatedAt = updatedAt.Time
		review.Service = &domain.Service{ID: review.ServiceID, Name: serviceName}

		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return reviews, nil
}
