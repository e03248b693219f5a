package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConflictService/pkg/types"
)

// BookingStatus статус бронирования уборки
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Booking бронирование уборки (только чтение, данные приходят из основной БД)
type Booking struct {
	ID              int64
	CustomerName    string
	ScheduledDate   time.Time        // календарная дата
	ScheduledTime   types.TimeString // время начала, HH:MM
	DurationMinutes int
	Address         string
	City            string
	ZipCode         string
	Status          BookingStatus
}

// IsActive возвращает true, если бронирование участвует в анализе конфликтов
func (b *Booking) IsActive() bool {
	for _, s := range ActiveStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// Interval возвращает занятый интервал [start, end)
// Ошибка означает битые данные: пустая дата, неверное время или длительность <= 0
func (b *Booking) Interval() (start, end time.Time, err error) {
	if b.DurationMinutes <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: booking id=%d has non-positive duration %d",
			ErrMalformedBooking, b.ID, b.DurationMinutes)
	}

	start, err = b.ScheduledTime.OnDate(b.ScheduledDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: booking id=%d: %v", ErrMalformedBooking, b.ID, err)
	}

	return start, start.Add(time.Duration(b.DurationMinutes) * time.Minute), nil
}

// Location адрес бронирования для оценки времени в пути
func (b *Booking) Location() Location {
	return Location{
		Address: b.Address,
		City:    b.City,
		ZipCode: b.ZipCode,
	}
}

// BookingsFilter фильтр выборки бронирований за период
type BookingsFilter struct {
	StartDate       time.Time // включительно
	EndDate         time.Time // включительно
	IncludeInactive bool      // включать ли завершенные и отмененные
}
