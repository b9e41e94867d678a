package hours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/pkg/dbmetrics"
	"github.com/abhi96256/Appoinment/pkg/pgerrors"
	"github.com/abhi96256/Appoinment/pkg/psqlbuilder"
)

var hoursColumns = []string{
	"id",
	"service_id",
	"start_hour",
	"end_hour",
	"break_start_hour",
	"break_end_hour",
	"exclude_break_overlap",
	"created_at",
	"updated_at",
}

// Repository репозиторий переопределений рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByService получает переопределение для услуги.
// serviceID == nil означает глобальную запись (service_id IS NULL)
func (r *Repository) GetByService(ctx context.Context, serviceID *int64) (*domain.BusinessHoursConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(hoursColumns...).
		From("business_hours").
		Where(serviceCondition(serviceID)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByService - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByService - scan business hours: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetWithHierarchy получает переопределение с учетом приоритетов:
// 1. Рабочие часы конкретной услуги (если serviceID указан)
// 2. Глобальные рабочие часы (service_id IS NULL)
//
// Если запись не найдена ни на одном уровне, возвращает ErrHoursNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, serviceID *int64) (*domain.BusinessHoursConfig, error) {
	// 1. Рабочие часы услуги
	if serviceID != nil {
		config, err := r.GetByService(ctx, serviceID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrHoursNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (service): %v", ErrExecQuery, err)
		}
	}

	// 2. Глобальные рабочие часы
	config, err := r.GetByService(ctx, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrHoursNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (global): %v", ErrExecQuery, err)
	}

	return nil, ErrHoursNotFound
}

// Upsert обновляет запись для service_id или создает новую.
// NULL не участвует в уникальном индексе, поэтому ON CONFLICT не подходит для глобальной записи:
// сначала UPDATE, при отсутствии строки INSERT. Вызывать внутри транзакции.
func (r *Repository) Upsert(ctx context.Context, config *domain.BusinessHoursConfig) (*domain.BusinessHoursConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("business_hours").
		Set("start_hour", config.Hours.Start).
		Set("end_hour", config.Hours.End).
		Set("break_start_hour", config.Hours.BreakStart).
		Set("break_end_hour", config.Hours.BreakEnd).
		Set("exclude_break_overlap", config.Hours.ExcludeBreakOverlap).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(serviceCondition(config.ServiceID)).
		Suffix("RETURNING " + strings.Join(hoursColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return updated, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: Upsert - execute update: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Insert("business_hours").
		Columns(
			"service_id",
			"start_hour",
			"end_hour",
			"break_start_hour",
			"break_end_hour",
			"exclude_break_overlap",
		).
		Values(
			config.ServiceID,
			config.Hours.Start,
			config.Hours.End,
			config.Hours.BreakStart,
			config.Hours.BreakEnd,
			config.Hours.ExcludeBreakOverlap,
		).
		Suffix("RETURNING " + strings.Join(hoursColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// DeleteByService удаляет переопределение, после чего действует следующий уровень иерархии
func (r *Repository) DeleteByService(ctx context.Context, serviceID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_hours").
		Where(serviceCondition(serviceID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByService - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByService - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoursNotFound
	}

	return nil
}

// serviceCondition service_id = $1 или service_id IS NULL
func serviceCondition(serviceID *int64) squirrel.Eq {
	if serviceID == nil {
		return squirrel.Eq{"service_id": nil}
	}
	return squirrel.Eq{"service_id": *serviceID}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.BusinessHoursConfig, error) {
	var config domain.BusinessHoursConfig
	var serviceID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&serviceID,
		&config.Hours.Start,
		&config.Hours.End,
		&config.Hours.BreakStart,
		&config.Hours.BreakEnd,
		&config.Hours.ExcludeBreakOverlap,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if serviceID.Valid {
		config.ServiceID = &serviceID.Int64
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
