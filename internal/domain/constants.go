package domain

import "errors"

// ErrMalformedBooking бронирование с некорректными датой, временем или длительностью
var ErrMalformedBooking = errors.New("malformed booking")

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, участвующих в анализе конфликтов
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}
