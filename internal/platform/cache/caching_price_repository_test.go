package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain/entity"
)

type mockPriceStore struct {
	findFn        func(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error)
	upsertBatchFn func(ctx context.Context, quotes []entity.Quote) error
	findCalls     int
}

func (m *mockPriceStore) Find(ctx context.Context, variety decision.Variety, limit int) ([]entity.Quote, error) {
	m.findCalls++
	if m.findFn != nil {
		return m.findFn(ctx, variety, limit)
	}
	return nil, nil
}

func (m *mockPriceStore) UpsertBatch(ctx context.Context, quotes []entity.Quote) error {
	if m.upsertBatchFn != nil {
		return m.upsertBatchFn(ctx, quotes)
	}
	return nil
}

var sample = []entity.Quote{
	{Variety: decision.VarietyArabica, Date: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), Price: 2204.71},
	{Variety: decision.VarietyArabica, Date: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), Price: 2178.3},
}

func prices(qs []entity.Quote) []float64 {
	out := make([]float64, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.Price)
	}
	return out
}

func TestNewCachingPriceRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingPriceRepository(nil, 0, &mockPriceStore{}, "")
	assert.Equal(t, "prices", repo.namespace)
	assert.Zero(t, repo.ttl)
	assert.Greater(t, repo.entryTTL(), time.Duration(0))
	assert.Nil(t, repo.rdb)

	repo = NewCachingPriceRepository(nil, 10*time.Minute, &mockPriceStore{}, "custom")
	assert.Equal(t, "custom", repo.namespace)
	assert.Equal(t, 10*time.Minute, repo.ttl)
	assert.Equal(t, 10*time.Minute, repo.entryTTL())
}

func TestCachingPriceRepository_QuotationTTLFollowsTheClock(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPriceStore{findFn: func(context.Context, decision.Variety, int) ([]entity.Quote, error) {
		return sample, nil
	}}
	repo := NewCachingPriceRepository(rdb, 0, inner, "prices")

	// 12:00 and 17:00 in São Paulo (UTC-3)
	noon := time.Date(2025, 10, 14, 15, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return noon }
	assert.Equal(t, 6*time.Hour, repo.entryTTL())

	later := noon.Add(5 * time.Hour)
	repo.now = func() time.Time { return later }
	assert.Equal(t, time.Hour, repo.entryTTL())

	b, _ := json.Marshal(sample)
	mock.ExpectGet("prices:arabica:90").RedisNil()
	mock.ExpectSet("prices:arabica:90", b, time.Hour).SetVal("OK")

	_, err := repo.Find(context.Background(), decision.VarietyArabica, 90)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceRepository_Find_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockPriceStore{findFn: func(context.Context, decision.Variety, int) ([]entity.Quote, error) {
		return sample, nil
	}}
	repo := NewCachingPriceRepository(nil, time.Minute, inner, "prices")

	got, err := repo.Find(context.Background(), decision.VarietyArabica, 90)
	require.NoError(t, err)
	assert.Equal(t, prices(sample), prices(got))
	assert.Equal(t, 1, inner.findCalls)
}

func TestCachingPriceRepository_Find_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	b, _ := json.Marshal(sample)
	mock.ExpectGet("prices:arabica:90").SetVal(string(b))

	inner := &mockPriceStore{}
	repo := NewCachingPriceRepository(rdb, time.Minute, inner, "prices")

	got, err := repo.Find(context.Background(), decision.VarietyArabica, 90)
	require.NoError(t, err)
	assert.Equal(t, prices(sample), prices(got))
	assert.Equal(t, 0, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceRepository_Find_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	b, _ := json.Marshal(sample)
	mock.ExpectGet("prices:robusta:30").RedisNil()
	mock.ExpectSet("prices:robusta:30", b, time.Minute).SetVal("OK")

	inner := &mockPriceStore{findFn: func(_ context.Context, v decision.Variety, limit int) ([]entity.Quote, error) {
		assert.Equal(t, decision.VarietyRobusta, v)
		assert.Equal(t, 30, limit)
		return sample, nil
	}}
	repo := NewCachingPriceRepository(rdb, time.Minute, inner, "prices")

	got, err := repo.Find(context.Background(), decision.VarietyRobusta, 30)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceRepository_Find_CorruptedEntry(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	b, _ := json.Marshal(sample)
	mock.ExpectGet("prices:arabica:90").SetVal("{not json")
	mock.ExpectDel("prices:arabica:90").SetVal(1)
	mock.ExpectSet("prices:arabica:90", b, time.Minute).SetVal("OK")

	inner := &mockPriceStore{findFn: func(context.Context, decision.Variety, int) ([]entity.Quote, error) {
		return sample, nil
	}}
	repo := NewCachingPriceRepository(rdb, time.Minute, inner, "prices")

	_, err := repo.Find(context.Background(), decision.VarietyArabica, 90)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.findCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceRepository_Find_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("prices:arabica:90").RedisNil()
	boom := errors.New("db down")
	repo := NewCachingPriceRepository(rdb, time.Minute, &mockPriceStore{findFn: func(context.Context, decision.Variety, int) ([]entity.Quote, error) {
		return nil, boom
	}}, "prices")

	_, err := repo.Find(context.Background(), decision.VarietyArabica, 90)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceRepository_UpsertBatch_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "prices:arabica:*", 200).SetVal([]string{"prices:arabica:90", "prices:arabica:30"}, 0)
	mock.ExpectDel("prices:arabica:90", "prices:arabica:30").SetVal(2)

	var stored []entity.Quote
	inner := &mockPriceStore{upsertBatchFn: func(_ context.Context, qs []entity.Quote) error {
		stored = qs
		return nil
	}}
	repo := NewCachingPriceRepository(rdb, time.Minute, inner, "prices")

	require.NoError(t, repo.UpsertBatch(context.Background(), sample))
	assert.Len(t, stored, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceRepository_UpsertBatch_InnerErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	boom := errors.New("db down")
	repo := NewCachingPriceRepository(rdb, time.Minute, &mockPriceStore{upsertBatchFn: func(context.Context, []entity.Quote) error {
		return boom
	}}, "prices")

	assert.ErrorIs(t, repo.UpsertBatch(context.Background(), sample), boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
