// Package catalog - read-through кэш поиска бизнесов, товаров и услуг в Redis.
// Ошибки Redis не ломают запрос: кэш пропускается, данные читаются из источника.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/LocalBiz-BookingService/internal/domain"
)

const keyPrefix = "localbiz:catalog:"

// Cache кэширующая обертка над Source
type Cache struct {
	source Source
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCache создает кэш каталога
func NewCache(source Source, client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{
		source: source,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func entityKey(entity string, id int64) string {
	return fmt.Sprintf("%s%s:%d", keyPrefix, entity, id)
}

func (c *Cache) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	return readThrough(ctx, c, entityKey("business", id), func() (*domain.Business, error) {
		return c.source.GetBusinessByID(ctx, id)
	})
}

func (c *Cache) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return readThrough(ctx, c, entityKey("product", id), func() (*domain.Product, error) {
		return c.source.GetProductByID(ctx, id)
	})
}

func (c *Cache) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return readThrough(ctx, c, entityKey("service", id), func() (*domain.Service, error) {
		return c.source.GetServiceByID(ctx, id)
	})
}

// GetUserByID не кэшируется: роль пользователя должна проверяться по актуальным данным
func (c *Cache) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return c.source.GetUserByID(ctx, id)
}

// Invalidate удаляет сущность из кэша (entity: business | product | service)
func (c *Cache) Invalidate(ctx context.Context, entity string, id int64) error {
	return c.client.Del(ctx, entityKey(entity, id)).Err()
}

// readThrough читает значение из Redis, при промахе загружает из источника и сохраняет
// Ошибки "не найдено" не кэшируются
func readThrough[T any](ctx context.Context, c *Cache, key string, load func() (*T, error)) (*T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var value T
		if err := json.Unmarshal(data, &value); err == nil {
			return &value, nil
		}
		c.logger.Warn("catalog cache: corrupted entry %s, reloading", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache: get %s: %v", key, err)
	}

	value, err := load()
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache: marshal %s: %v", key, err)
		return value, nil
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache: set %s: %v", key, err)
	}

	return value, nil
}
