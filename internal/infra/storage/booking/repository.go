package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/courtops/CourtBookingService/internal/domain"
	"github.com/courtops/CourtBookingService/pkg/dbmetrics"
	"github.com/courtops/CourtBookingService/pkg/psqlbuilder"
)

// Код ошибки Postgres для нарушения exclusion constraint
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"organization_id",
	"user_id",
	"guest_id",
	"status",
	"total_cents",
	"currency",
	"expires_at",
	"cancelled_at",
	"cancel_reason",
	"reminder_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий реестра бронирований: бронирования, их слоты
// и платежи. Слоты неактивных (отмененных/просроченных) бронирований
// помечаются active=false в той же транзакции, что и смена статуса, -
// на этом флаге держится partial exclusion constraint в БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertBookingWithSlots атомарно создает бронирование, его слоты и платеж.
// Должен вызываться внутри транзакции (txmanager.DoSerializable);
// нарушение exclusion constraint по интервалам мапится в ErrSlotConflict,
// чтобы проигравший конкурентный запрос получил «слот занят», а не 500.
func (r *Repository) InsertBookingWithSlots(ctx context.Context, b *domain.Booking, payment *domain.Payment) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"organization_id",
			"user_id",
			"guest_id",
			"status",
			"total_cents",
			"currency",
			"expires_at",
		).
		Values(
			b.OrganizationID,
			b.UserID,
			b.GuestID,
			b.Status,
			b.TotalCents,
			b.Currency,
			b.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - build booking insert: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - insert booking: %v", ErrExecQuery, err)
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	// Слоты вставляем одним запросом; здесь срабатывает exclusion constraint
	slotsBuilder := psqlbuilder.Insert("booking_slots").
		Columns("booking_id", "court_id", "organization_id", "start_time", "end_time", "price_cents", "active")
	for i := range b.Slots {
		s := &b.Slots[i]
		s.BookingID = b.ID
		slotsBuilder = slotsBuilder.Values(s.BookingID, s.CourtID, s.OrganizationID, s.StartTime, s.EndTime, s.PriceCents, true)
	}

	query, args, err = slotsBuilder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - build slots insert: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - insert slots: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(&b.Slots[i].ID); err != nil {
			return nil, fmt.Errorf("%w: InsertBookingWithSlots - scan slot id: %v", ErrScanRow, err)
		}
	}
	if err := rows.Err(); err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - slots rows: %v", ErrScanRow, err)
	}

	payment.BookingID = b.ID
	query, args, err = psqlbuilder.Insert("payments").
		Columns("booking_id", "amount_cents", "status", "gateway_ref").
		Values(payment.BookingID, payment.AmountCents, payment.Status, payment.GatewayRef).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - build payment insert: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: InsertBookingWithSlots - insert payment: %v", ErrExecQuery, err)
	}
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID вместе со слотами.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE), чтобы
// конкурентные мутации статуса выстраивались по порядку.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := r.loadSlots(ctx, []*domain.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// FindOverlappingSlots возвращает активные слоты корта, пересекающие
// интервал [from, to). Внутри транзакции найденные строки блокируются
// (FOR UPDATE) на время check-and-insert.
func (r *Repository) FindOverlappingSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error) {
	return r.findSlots(ctx, squirrel.And{
		squirrel.Eq{"court_id": courtID, "active": true},
		squirrel.Lt{"start_time": to},
		squirrel.Gt{"end_time": from},
	}, dbmetrics.IsInTransaction(ctx))
}

// FindConfirmedSlots возвращает слоты подтвержденных бронирований корта,
// пересекающие интервал [from, to). Используется как guard при создании
// блокировок корта.
func (r *Repository) FindConfirmedSlots(ctx context.Context, courtID int64, from, to time.Time) ([]domain.BookingSlot, error) {
	return r.findSlots(ctx, squirrel.And{
		squirrel.Eq{"court_id": courtID, "active": true},
		squirrel.Lt{"start_time": to},
		squirrel.Gt{"end_time": from},
		squirrel.Expr("booking_id IN (SELECT id FROM bookings WHERE status = ?)", domain.StatusConfirmed),
	}, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) findSlots(ctx context.Context, pred interface{}, forUpdate bool) ([]domain.BookingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "booking_id", "court_id", "organization_id", "start_time", "end_time", "price_cents",
	).
		From("booking_slots").
		Where(pred).
		OrderBy("start_time ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: findSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: findSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BookingSlot, 0)
	for rows.Next() {
		var s domain.BookingSlot
		if err := rows.Scan(&s.ID, &s.BookingID, &s.CourtID, &s.OrganizationID, &s.StartTime, &s.EndTime, &s.PriceCents); err != nil {
			return nil, fmt.Errorf("%w: findSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: findSlots - rows error: %v", ErrScanRow, err)
	}
	return slots, nil
}

// CountRequesterSlotsOnDate считает активные слоты пользователя или гостя
// в организации за интервал суток [dayStart, dayEnd). Используется для
// дневного лимита слотов.
func (r *Repository) CountRequesterSlotsOnDate(ctx context.Context, orgID int64, userID, guestID *int64, dayStart, dayEnd time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pred := squirrel.And{
		squirrel.Eq{"s.organization_id": orgID, "s.active": true},
		squirrel.GtOrEq{"s.start_time": dayStart},
		squirrel.Lt{"s.start_time": dayEnd},
	}
	switch {
	case userID != nil:
		pred = append(pred, squirrel.Eq{"b.user_id": *userID})
	case guestID != nil:
		pred = append(pred, squirrel.Eq{"b.guest_id": *guestID})
	default:
		return 0, fmt.Errorf("%w: CountRequesterSlotsOnDate - requester is required", ErrBuildQuery)
	}

	query, args, err := psqlbuilder.Select("COUNT(1)").
		From("booking_slots s").
		Join("bookings b ON b.id = s.booking_id").
		Where(pred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountRequesterSlotsOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountRequesterSlotsOnDate - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// Confirm переводит бронирование в confirmed и закрывает его платеж.
// Вызывается внутри транзакции после проверки текущего статуса.
func (r *Repository) Confirm(ctx context.Context, bookingID int64, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID, "status": domain.StatusPendingPayment}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build booking update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - update booking: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	query, args, err = psqlbuilder.Update("payments").
		Set("status", domain.PaymentCompleted).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build payment update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Confirm - update payment: %v", ErrExecQuery, err)
	}
	return nil
}

// MarkPaymentFailed помечает платеж бронирования как failed.
// Само бронирование остается pending_payment и доживет до expires_at.
func (r *Repository) MarkPaymentFailed(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentFailed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID, "status": domain.PaymentPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaymentFailed - build update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPaymentFailed - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// GetPaymentByBookingID получает платеж бронирования
func (r *Repository) GetPaymentByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "booking_id", "amount_cents", "status", "paid_at", "gateway_ref", "created_at", "updated_at",
	).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.BookingID, &p.AmountCents, &p.Status, &p.PaidAt, &p.GatewayRef, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentByBookingID - scan payment: %v", ErrScanRow, err)
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// GetPaymentByGatewayRef получает платеж по ссылке платежного шлюза.
// Вебхуки идентифицируют платеж только этой ссылкой.
func (r *Repository) GetPaymentByGatewayRef(ctx context.Context, gatewayRef string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "booking_id", "amount_cents", "status", "paid_at", "gateway_ref", "created_at", "updated_at",
	).
		From("payments").
		Where(squirrel.Eq{"gateway_ref": gatewayRef})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentByGatewayRef - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.BookingID, &p.AmountCents, &p.Status, &p.PaidAt, &p.GatewayRef, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPaymentByGatewayRef - scan payment: %v", ErrScanRow, err)
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// Cancel отменяет бронирование и освобождает его слоты в реестре
func (r *Repository) Cancel(ctx context.Context, bookingID int64, reason string, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": bookingID, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build booking update: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - update booking: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return r.deactivateSlots(ctx, executor, []int64{bookingID})
}

// ExpireDue переводит все просроченные pending_payment бронирования в
// expired, освобождает их слоты и помечает платежи как expired.
// Повторный вызов не находит ничего нового (идемпотентность).
// Должен вызываться внутри транзакции, чтобы бронирование и его платеж
// не разошлись по статусу.
func (r *Repository) ExpireDue(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("cancelled_at", now).
		Set("cancel_reason", domain.CancelReasonPaymentTimeout).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.Lt{"expires_at": now}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireDue - build booking update: %v", ErrBuildQuery, err)
	}

	ids, err := queryIDs(ctx, executor, query, args)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return ids, nil
	}

	if err := r.deactivateSlots(ctx, executor, ids); err != nil {
		return nil, err
	}

	query, args, err = psqlbuilder.Update("payments").
		Set("status", domain.PaymentExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("booking_id = ANY(?)", pq.Array(ids))).
		Where(squirrel.Eq{"status": domain.PaymentPending}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpireDue - build payment update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ExpireDue - update payments: %v", ErrExecQuery, err)
	}

	return ids, nil
}

// CompleteElapsed переводит confirmed бронирования, все слоты которых
// уже закончились, в completed. Производное состояние, выставляется батчем.
func (r *Repository) CompleteElapsed(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM booking_slots s WHERE s.booking_id = bookings.id AND s.end_time > ?)",
			now,
		)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CompleteElapsed - build update: %v", ErrBuildQuery, err)
	}

	return queryIDs(ctx, executor, query, args)
}

// GetByUserID получает бронирования пользователя, опционально по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	pred := squirrel.And{squirrel.Eq{"user_id": userID}}
	if status != nil {
		pred = append(pred, squirrel.Eq{"status": *status})
	}
	return r.listBookings(ctx, pred, "created_at DESC")
}

// GetByOrganizationWithFilter получает бронирования организации с гибкой
// фильтрацией по корту, периоду слотов и статусу
func (r *Repository) GetByOrganizationWithFilter(ctx context.Context, filter domain.OrganizationBookingsFilter) ([]*domain.Booking, error) {
	pred := squirrel.And{squirrel.Eq{"organization_id": filter.OrganizationID}}

	if filter.Status != nil {
		pred = append(pred, squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		pred = append(pred, squirrel.NotEq{"status": inactive})
	}

	// Фильтры по корту и периоду действуют через слоты бронирования
	if filter.CourtID != nil {
		pred = append(pred, squirrel.Expr(
			"id IN (SELECT booking_id FROM booking_slots WHERE court_id = ?)", *filter.CourtID,
		))
	}
	if filter.From != nil {
		pred = append(pred, squirrel.Expr(
			"id IN (SELECT booking_id FROM booking_slots WHERE start_time >= ?)", *filter.From,
		))
	}
	if filter.To != nil {
		pred = append(pred, squirrel.Expr(
			"id IN (SELECT booking_id FROM booking_slots WHERE start_time < ?)", *filter.To,
		))
	}

	return r.listBookings(ctx, pred, "created_at DESC")
}

// HasActiveSlotsAfter проверяет, есть ли у корта активные слоты после
// момента after. Guard для удаления корта.
func (r *Repository) HasActiveSlotsAfter(ctx context.Context, courtID int64, after time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(1)").
		From("booking_slots").
		Where(squirrel.Eq{"court_id": courtID, "active": true}).
		Where(squirrel.Gt{"end_time": after}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveSlotsAfter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasActiveSlotsAfter - scan count: %v", ErrScanRow, err)
	}
	return count > 0, nil
}

// Вспомогательные методы

func (r *Repository) listBookings(ctx context.Context, pred interface{}, orderBy string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(pred).
		OrderBy(orderBy).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listBookings - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadSlots(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// loadSlots подгружает слоты для набора бронирований одним запросом
func (r *Repository) loadSlots(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, len(bookings))
	byID := make(map[int64]*domain.Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	query, args, err := psqlbuilder.Select(
		"id", "booking_id", "court_id", "organization_id", "start_time", "end_time", "price_cents",
	).
		From("booking_slots").
		Where(squirrel.Expr("booking_id = ANY(?)", pq.Array(ids))).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.BookingSlot
		if err := rows.Scan(&s.ID, &s.BookingID, &s.CourtID, &s.OrganizationID, &s.StartTime, &s.EndTime, &s.PriceCents); err != nil {
			return fmt.Errorf("%w: loadSlots - scan slot: %v", ErrScanRow, err)
		}
		if b, ok := byID[s.BookingID]; ok {
			b.Slots = append(b.Slots, s)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSlots - rows error: %v", ErrScanRow, err)
	}
	return nil
}

func (r *Repository) deactivateSlots(ctx context.Context, executor DBExecutor, bookingIDs []int64) error {
	query, args, err := psqlbuilder.Update("booking_slots").
		Set("active", false).
		Where(squirrel.Expr("booking_id = ANY(?)", pq.Array(bookingIDs))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deactivateSlots - build update: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deactivateSlots - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.OrganizationID,
		&b.UserID,
		&b.GuestID,
		&b.Status,
		&b.TotalCents,
		&b.Currency,
		&b.ExpiresAt,
		&b.CancelledAt,
		&b.CancelReason,
		&b.ReminderSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func queryIDs(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]int64, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: queryIDs - scan id: %v", ErrScanRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryIDs - rows error: %v", ErrScanRow, err)
	}
	return ids, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation
}
