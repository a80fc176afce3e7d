package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/styledecor/styledecor/config"
	"github.com/styledecor/styledecor/internal/domain"
)

type RedisCache struct {
	client           *redis.Client
	servicesTTL      time.Duration
	topDecoratorsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, servicesTTL, topDecoratorsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:           redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		servicesTTL:      servicesTTL,
		topDecoratorsTTL: topDecoratorsTTL,
	}
}

func (c *RedisCache) GetServices(ctx context.Context) ([]domain.Service, error) {
	data, err := c.client.Get(ctx, servicesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *RedisCache) SetServices(ctx context.Context, services []domain.Service) error {
	payload, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, servicesKey(), payload, c.servicesTTL).Err()
}

func (c *RedisCache) InvalidateServices(ctx context.Context) error {
	return c.client.Del(ctx, servicesKey()).Err()
}

func (c *RedisCache) GetTopDecorators(ctx context.Context) ([]domain.Decorator, error) {
	data, err := c.client.Get(ctx, topDecoratorsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var decorators []domain.Decorator
	if err := json.Unmarshal(data, &decorators); err != nil {
		return nil, err
	}
	return decorators, nil
}

func (c *RedisCache) SetTopDecorators(ctx context.Context, decorators []domain.Decorator) error {
	payload, err := json.Marshal(decorators)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, topDecoratorsKey(), payload, c.topDecoratorsTTL).Err()
}

func servicesKey() string {
	return "cache:services"
}

func topDecoratorsKey() string {
	return "cache:decorators:top"
}
