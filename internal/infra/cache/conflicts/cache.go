package conflicts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache кеш отчетов о конфликтах в Redis
// Отчет за период живет ttl, после чего пересчитывается по свежим данным
type Cache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewCache создает кеш отчетов
func NewCache(client *redis.Client, keyPrefix string, ttl time.Duration) *Cache {
	return &Cache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get возвращает отчет за период; found=false, если записи нет
func (c *Cache) Get(ctx context.Context, startDate, endDate string) (*Report, bool, error) {
	data, err := c.client.Get(ctx, c.rangeKey(startDate, endDate)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return &report, true, nil
}

// Set сохраняет отчет за период
func (c *Cache) Set(ctx context.Context, report *Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, c.rangeKey(report.StartDate, report.EndDate), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	return nil
}

// Ping проверяет соединение с Redis
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) rangeKey(startDate, endDate string) string {
	return fmt.Sprintf("%srange:%s:%s", c.keyPrefix, startDate, endDate)
}
