package conflicts

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("conflicts.cache: failed to read report")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("conflicts.cache: failed to write report")

	// ErrDecode возвращается, если в кеше лежит битый JSON
	ErrDecode = errors.New("conflicts.cache: failed to decode report")
)
