package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/courtops/CourtBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrganizationID <= 0 {
		return fmt.Errorf("%w: organizationID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	// Ровно один инициатор: пользователь или гость
	if (req.UserID == nil) == (req.Guest == nil) {
		return fmt.Errorf("%w: exactly one of userID or guest is required", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Guest != nil {
		if err := validateGuest(req.Guest); err != nil {
			return err
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.StartTimes) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	return nil
}

// validateGuest валидирует данные гостя
func validateGuest(g *GuestInfo) error {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name is too long", ErrInvalidInput)
	}

	email := strings.TrimSpace(g.Email)
	if email == "" {
		return fmt.Errorf("%w: guest email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxGuestEmailLength || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: guest email is invalid", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования организации.
// Сегодняшний день определяется в часовом поясе организации.
func validateDate(requestDate, localNow time.Time, windowDays int) error {
	if isDateBefore(requestDate, localNow) {
		return ErrInvalidDate
	}

	maxDate := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, localNow.Location()).
		AddDate(0, 0, windowDays)

	if isDateBefore(maxDate, requestDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, windowDays)
	}

	return nil
}

// validateSlotGrid проверяет, что запрошенные времена попадают в сетку корта
// и образуют непрерывный блок.
// Сетка идет от времени открытия с шагом длительности слота; слот не может
// выходить за время закрытия.
func validateSlotGrid(court *domain.Court, req *Request) error {
	openMinutes, err := court.OpenTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: invalid court open time: %v", ErrInternal, err)
	}
	closeMinutes, err := court.CloseTime.TotalMinutes()
	if err != nil {
		return fmt.Errorf("%w: invalid court close time: %v", ErrInternal, err)
	}

	duration := court.SlotDurationMinutes

	prev := -1
	for _, st := range req.StartTimes {
		m, err := st.TotalMinutes()
		if err != nil {
			return fmt.Errorf("%w: invalid start time %q", ErrInvalidTimeSlot, st)
		}

		if m < openMinutes || m+duration > closeMinutes {
			return fmt.Errorf("%w: slot %s is outside operating hours", ErrInvalidTimeSlot, st)
		}

		if (m-openMinutes)%duration != 0 {
			return fmt.Errorf("%w: slot %s is not aligned to the %d minute grid", ErrInvalidTimeSlot, st, duration)
		}

		// Слоты должны идти строго подряд без разрывов и дублей
		if prev >= 0 && m != prev+duration {
			return ErrSlotsNotContiguous
		}
		prev = m
	}

	return nil
}

// isDateBefore сравнивает только календарные даты, без времени
func isDateBefore(date, other time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := other.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
