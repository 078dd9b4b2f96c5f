package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/auracontrol/AC-BookingService/internal/domain"
	"github.com/auracontrol/AC-BookingService/pkg/dbmetrics"
	"github.com/auracontrol/AC-BookingService/pkg/psqlbuilder"
)

// Имя exclusion constraint на пересекающиеся окна одного мастера
// (см. миграции: EXCLUDE USING gist ... WHERE status <> 'CANCELLED')
const technicianWindowConstraint = "appointments_technician_window_excl"

var appointmentColumns = []string{
	"id",
	"customer_id",
	"technician_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"service_name",
	"final_price",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями и их резервами ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись вместе с резервами ресурсов одной атомарной единицей.
// Ожидается вызов внутри транзакции (executor берётся из контекста):
// либо коммитятся и запись, и все её резервы, либо ничего
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"customer_id",
			"technician_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"final_price",
			"note",
		).
		Values(
			appt.CustomerID,
			appt.TechnicianID,
			appt.ServiceID,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.ServiceName,
			appt.FinalPrice,
			appt.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, translateConflict(fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err), err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	if err := r.insertReservations(ctx, executor, appt.ID, appt.ResourceIDs); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetByID получает запись по ID вместе с резервами ресурсов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	if err := r.loadReservations(ctx, executor, []*domain.Appointment{appt}); err != nil {
		return nil, err
	}

	return appt, nil
}

// GetOverlapping получает все активные записи, пересекающие окно [from, to),
// вместе с их резервами ресурсов. Используется расчётом слотов и путями
// записи: одна выборка на весь день, дальше фильтрация в памяти
func (r *Repository) GetOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments, err := scanAppointments(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadReservations(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// GetUpcomingByCustomer получает будущие неотменённые записи клиента
func (r *Repository) GetUpcomingByCustomer(ctx context.Context, customerID int64, now time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Gt{"start_time": now}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUpcomingByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetHistoryByCustomer получает прошедшие записи клиента (включая отменённые)
func (r *Repository) GetHistoryByCustomer(ctx context.Context, customerID int64, now time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Lt{"start_time": now}).
		OrderBy("start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHistoryByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByStatus получает записи с опциональным фильтром по статусу
// (админский обзор календаря)
func (r *Repository) ListByStatus(ctx context.Context, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		OrderBy("start_time DESC")

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

	return scanAppointments(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
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
		return ErrAppointmentNotFound
	}

	return nil
}

// UpdateSchedule атомарно переносит запись на новое окно: обновляет
// start/end и заменяет резервы ресурсов. Ожидается вызов внутри транзакции
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, start, end time.Time, resourceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return translateConflict(fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err), err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	// Старые резервы заменяются новыми в той же транзакции
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("appointment_resources").
		Where(squirrel.Eq{"appointment_id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: UpdateSchedule - delete reservations: %v", ErrExecQuery, err)
	}

	return r.insertReservations(ctx, executor, id, resourceIDs)
}

// insertReservations вставляет резервы ресурсов записи
func (r *Repository) insertReservations(ctx context.Context, executor DBExecutor, appointmentID int64, resourceIDs []int64) error {
	if len(resourceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("appointment_resources").
		Columns("appointment_id", "resource_id")

	for _, resourceID := range resourceIDs {
		insertBuilder = insertBuilder.Values(appointmentID, resourceID)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertReservations - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertReservations - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// loadReservations подгружает резервы ресурсов для набора записей
func (r *Repository) loadReservations(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]int64, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))
	for i, appt := range appointments {
		ids[i] = appt.ID
		byID[appt.ID] = appt
	}

	query, args, err := psqlbuilder.Select("appointment_id", "resource_id").
		From("appointment_resources").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("resource_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadReservations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadReservations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var appointmentID, resourceID int64
		if err := rows.Scan(&appointmentID, &resourceID); err != nil {
			return fmt.Errorf("%w: loadReservations - scan row: %v", ErrScanRow, err)
		}
		if appt, ok := byID[appointmentID]; ok {
			appt.ResourceIDs = append(appt.ResourceIDs, resourceID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadReservations - iterate rows: %v", ErrScanRow, err)
	}

	return nil
}

// rowScanner абстракция над *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.CustomerID,
		&appt.TechnicianID,
		&appt.ServiceID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.ServiceName,
		&appt.FinalPrice,
		&appt.Note,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// translateConflict переводит нарушение exclusion constraint в типизированную
// ошибку репозитория; прочие ошибки возвращает как есть (wrapped)
func translateConflict(wrapped, original error) error {
	var pqErr *pq.Error
	if errors.As(original, &pqErr) {
		if pqErr.Code == "23P01" && pqErr.Constraint == technicianWindowConstraint {
			return ErrTechnicianConflict
		}
	}
	return wrapped
}
