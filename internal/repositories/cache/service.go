// Package cache wraps Redis for application-level caching of customers and
// role queues.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dashen/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a typed lookup finds nothing.
var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

// Base operations

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// DeletePattern removes every key matching pattern. Used to drop the queue
// listings for a status after a transition touches it.
func (s *CacheService) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := s.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	return s.Delete(ctx, keys...)
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Customer caching

func (s *CacheService) CacheCustomer(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return errors.New("cannot cache nil customer")
	}
	keys := []string{s.GenerateKey("customer", "id", customer.ID)}
	if customer.ApplicationReferenceNumber != nil {
		keys = append(keys, s.GenerateKey("customer", "ref", *customer.ApplicationReferenceNumber))
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, customer); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetCustomer(ctx context.Context, key string) (*models.Customer, error) {
	var customer models.Customer
	found, err := s.Get(ctx, key, &customer)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &customer, nil
}

// InvalidateCustomer drops the customer entry and every queue listing; a
// status change moves the row between queues, so both sides go stale.
func (s *CacheService) InvalidateCustomer(ctx context.Context, customer *models.Customer) error {
	keys := []string{s.GenerateKey("customer", "id", customer.ID)}
	if customer.ApplicationReferenceNumber != nil {
		keys = append(keys, s.GenerateKey("customer", "ref", *customer.ApplicationReferenceNumber))
	}
	if err := s.Delete(ctx, keys...); err != nil {
		return err
	}
	return s.DeletePattern(ctx, "queue:*")
}

// Queue caching

// Queue listings churn with every transition, so they get a short TTL on
// top of the pattern invalidation.
const queueTTL = 5 * time.Minute

// QueuePage is one cached page of a status queue listing.
type QueuePage struct {
	Customers []models.Customer `json:"customers"`
	Total     int64             `json:"total"`
}

func queueKey(status string, offset, limit int) string {
	return fmt.Sprintf("queue:%s:%d:%d", status, offset, limit)
}

func (s *CacheService) CacheQueue(ctx context.Context, status string, offset, limit int, page *QueuePage) error {
	if page == nil {
		return errors.New("cannot cache nil queue page")
	}
	return s.SetWithTTL(ctx, queueKey(status, offset, limit), page, queueTTL)
}

func (s *CacheService) GetQueue(ctx context.Context, status string, offset, limit int) (*QueuePage, error) {
	var page QueuePage
	found, err := s.Get(ctx, queueKey(status, offset, limit), &page)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &page, nil
}

// User caching

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, userID uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", userID))
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll clears the cache. Called once on startup.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// Close releases the Redis connection.
func (s *CacheService) Close() error {
	return s.client.Close()
}
