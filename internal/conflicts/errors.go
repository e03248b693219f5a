package conflicts

import "errors"

var (
	// ErrInvalidDateRange возвращается при некорректном диапазоне дат
	ErrInvalidDateRange = errors.New("conflicts: invalid date range")
)
