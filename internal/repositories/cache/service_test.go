package cache

import (
	"context"
	"testing"
	"time"

	"dashen/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *CacheService {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewCacheService(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
}

func TestQueueCacheRoundTrip(t *testing.T) {
	s := newTestCache(t)
	ctx := context.Background()

	_, err := s.GetQueue(ctx, "UNDER_REVIEW", 0, 10)
	assert.ErrorIs(t, err, ErrCacheMiss)

	page := &QueuePage{
		Customers: []models.Customer{
			{CustomerNumber: "CUST-AAAA1111", ApplicationStatus: "UNDER_REVIEW"},
			{CustomerNumber: "CUST-BBBB2222", ApplicationStatus: "UNDER_REVIEW"},
		},
		Total: 7,
	}
	require.NoError(t, s.CacheQueue(ctx, "UNDER_REVIEW", 0, 10, page))

	got, err := s.GetQueue(ctx, "UNDER_REVIEW", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Total)
	require.Len(t, got.Customers, 2)
	assert.Equal(t, "CUST-AAAA1111", got.Customers[0].CustomerNumber)

	// A different page is a different key.
	_, err = s.GetQueue(ctx, "UNDER_REVIEW", 10, 10)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInvalidateCustomerDropsQueuesAndCustomer(t *testing.T) {
	s := newTestCache(t)
	ctx := context.Background()

	ref := "DASHEN-202608-0042"
	customer := &models.Customer{
		CustomerNumber:             "CUST-AAAA1111",
		ApplicationReferenceNumber: &ref,
		ApplicationStatus:          "UNDER_REVIEW",
	}
	customer.ID = 1
	require.NoError(t, s.CacheCustomer(ctx, customer))
	require.NoError(t, s.CacheQueue(ctx, "UNDER_REVIEW", 0, 10,
		&QueuePage{Customers: []models.Customer{*customer}, Total: 1}))
	require.NoError(t, s.CacheQueue(ctx, "RM_RECCOMENDATION", 0, 10,
		&QueuePage{Total: 0}))

	require.NoError(t, s.InvalidateCustomer(ctx, customer))

	// A transition moves the row between queues, so every queue page and
	// both customer keys are gone.
	_, err := s.GetCustomer(ctx, s.GenerateKey("customer", "id", customer.ID))
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = s.GetCustomer(ctx, s.GenerateKey("customer", "ref", ref))
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = s.GetQueue(ctx, "UNDER_REVIEW", 0, 10)
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = s.GetQueue(ctx, "RM_RECCOMENDATION", 0, 10)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
