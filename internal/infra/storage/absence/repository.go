package absence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/pkg/dbmetrics"
	"github.com/auracontrol/AC-BookingService/pkg/psqlbuilder"
)

var absenceColumns = []string{
	"id",
	"technician_id",
	"start_date",
	"end_date",
	"reason",
	"status",
	"created_at",
}

// Repository репозиторий для работы с заявками на отсутствие
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку на отсутствие
func (r *Repository) Create(ctx context.Context, req *domain.AbsenceRequest) (*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("absence_requests").
		Columns("technician_id", "start_date", "end_date", "reason", "status").
		Values(req.TechnicianID, req.StartDate, req.EndDate, req.Reason, req.Status).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absence_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanAbsence(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAbsenceNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan absence: %v", ErrScanRow, err)
	}

	return req, nil
}

// UpdateStatus обновляет статус заявки (решение администратора)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AbsenceStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("absence_requests").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAbsenceNotFound
	}

	return nil
}

// GetBlockingOverlapping получает все заявки (PENDING и APPROVED),
// пересекающие окно [from, to). Используется резолвером доступности:
// одна выборка на окно, дальше фильтрация по мастеру в памяти
func (r *Repository) GetBlockingOverlapping(ctx context.Context, from, to time.Time) ([]*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absence_requests").
		Where(squirrel.Lt{"start_date": to}).
		Where(squirrel.Gt{"end_date": from}).
		Where(squirrel.Eq{"status": domain.BlockingAbsenceStatuses}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// GetBlockingForTechnician получает блокирующие заявки мастера,
// пересекающие окно [from, to). Используется проверкой дубликатов при подаче
func (r *Repository) GetBlockingForTechnician(ctx context.Context, technicianID int64, from, to time.Time) ([]*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absence_requests").
		Where(squirrel.Eq{"technician_id": technicianID}).
		Where(squirrel.Lt{"start_date": to}).
		Where(squirrel.Gt{"end_date": from}).
		Where(squirrel.Eq{"status": domain.BlockingAbsenceStatuses}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingForTechnician - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingForTechnician - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// GetByTechnician получает все заявки мастера (личный кабинет)
func (r *Repository) GetByTechnician(ctx context.Context, technicianID int64) ([]*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(absenceColumns...).
		From("absence_requests").
		Where(squirrel.Eq{"technician_id": technicianID}).
		OrderBy("start_date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTechnician - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTechnician - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// ListByStatus получает заявки с опциональным фильтром по статусу
// (админский обзор очереди заявок)
func (r *Repository) ListByStatus(ctx context.Context, status *domain.AbsenceStatus) ([]*domain.AbsenceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(absenceColumns...).
		From("absence_requests").
		OrderBy("created_at ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// rowScanner абстракция над *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAbsence(row rowScanner) (*domain.AbsenceRequest, error) {
	var req domain.AbsenceRequest
	var createdAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.TechnicianID,
		&req.StartDate,
		&req.EndDate,
		&req.Reason,
		&req.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time

	return &req, nil
}

func scanAbsences(rows *sql.Rows) ([]*domain.AbsenceRequest, error) {
	requests := make([]*domain.AbsenceRequest, 0)

	for rows.Next() {
		req, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan absence: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}

	return requests, nil
}
