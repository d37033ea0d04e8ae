package rule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/DMS-AppointmentService/internal/domain"
	"github.com/m04kA/DMS-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/DMS-AppointmentService/pkg/psqlbuilder"
)

// ruleColumns колонки таблицы availability_rules в порядке сканирования
var ruleColumns = []string{
	"id",
	"facility_id",
	"appointment_type_id",
	"day_of_week",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"is_active",
	"max_concurrent",
	"buffer_time_minutes",
	"grace_period_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил доступности
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило доступности
func (r *Repository) Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"facility_id",
			"appointment_type_id",
			"day_of_week",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"is_active",
			"max_concurrent",
			"buffer_time_minutes",
			"grace_period_minutes",
		).
		Values(
			rule.FacilityID,
			rule.AppointmentTypeID,
			rule.DayOfWeek,
			rule.StartDate,
			rule.EndDate,
			rule.StartTime,
			rule.EndTime,
			rule.IsActive,
			rule.MaxConcurrent,
			rule.BufferTimeMinutes,
			rule.GracePeriodMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := r.scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetByFacilityAndType получает ВСЕ правила пары (фасилити, тип записи),
// включая неактивные и с истёкшим диапазоном дат - фильтрация является
// обязанностью движка доступности, а не хранилища.
func (r *Repository) GetByFacilityAndType(ctx context.Context, facilityID, appointmentTypeID int64) ([]domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{
			"facility_id":         facilityID,
			"appointment_type_id": appointmentTypeID,
		}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityAndType - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityAndType - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// GetByFacility получает все правила фасилити по всем типам записей.
// Опционально фильтрует по типу записи.
func (r *Repository) GetByFacility(ctx context.Context, facilityID int64, appointmentTypeID *int64) ([]domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"facility_id": facilityID}).
		OrderBy("appointment_type_id ASC, day_of_week ASC, start_time ASC")

	if appointmentTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_type_id": *appointmentTypeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRules(rows)
}

// Update обновляет правило доступности целиком
func (r *Repository) Update(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_rules").
		Set("day_of_week", rule.DayOfWeek).
		Set("start_date", rule.StartDate).
		Set("end_date", rule.EndDate).
		Set("start_time", rule.StartTime).
		Set("end_time", rule.EndTime).
		Set("is_active", rule.IsActive).
		Set("max_concurrent", rule.MaxConcurrent).
		Set("buffer_time_minutes", rule.BufferTimeMinutes).
		Set("grace_period_minutes", rule.GracePeriodMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rule.UpdatedAt = updatedAt.Time
	return rule, nil
}

// Delete удаляет правило доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule сканирует одну строку в domain.AvailabilityRule
func (r *Repository) scanRule(row rowScanner) (*domain.AvailabilityRule, error) {
	var rule domain.AvailabilityRule
	var startDate, endDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.FacilityID,
		&rule.AppointmentTypeID,
		&rule.DayOfWeek,
		&startDate,
		&endDate,
		&rule.StartTime,
		&rule.EndTime,
		&rule.IsActive,
		&rule.MaxConcurrent,
		&rule.BufferTimeMinutes,
		&rule.GracePeriodMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		rule.StartDate = &startDate.Time
	}
	if endDate.Valid {
		rule.EndDate = &endDate.Time
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

// scanRules сканирует все строки результата
func (r *Repository) scanRules(rows *sql.Rows) ([]domain.AvailabilityRule, error) {
	rules := make([]domain.AvailabilityRule, 0)

	for rows.Next() {
		rule, err := r.scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
