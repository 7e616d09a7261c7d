package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/gamotph/adr-intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/gamotph/adr-intelligence/pkg/errors"
)

type CacheTestSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache Cache
}

func (s *CacheTestSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock

	client := NewClientWithRDB(db, logging.NewNopLogger())
	s.cache = NewRedisCache(client, logging.NewNopLogger(), WithPrefix("adr:"))
}

func (s *CacheTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

type cachedDist struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (s *CacheTestSuite) TestGet_Hit() {
	val := cachedDist{Label: "Fever", Count: 5}
	raw, _ := json.Marshal(val)
	s.mock.ExpectGet("adr:top-adrs").SetVal(string(raw))

	var dest cachedDist
	s.NoError(s.cache.Get(context.Background(), "top-adrs", &dest))
	s.Equal(val, dest)
}

func (s *CacheTestSuite) TestGet_Miss() {
	s.mock.ExpectGet("adr:nope").RedisNil()

	var dest cachedDist
	err := s.cache.Get(context.Background(), "nope", &dest)
	s.ErrorIs(err, ErrCacheMiss)
}

func (s *CacheTestSuite) TestSet_UsesDefaultTTLWhenZero() {
	val := cachedDist{Label: "Fever", Count: 5}
	raw, _ := json.Marshal(val)
	s.mock.ExpectSet("adr:top-adrs", raw, 5*time.Minute).SetVal("OK")

	s.NoError(s.cache.Set(context.Background(), "top-adrs", val, 0))
}

func (s *CacheTestSuite) TestDelete() {
	s.mock.ExpectDel("adr:a", "adr:b").SetVal(2)
	s.NoError(s.cache.Delete(context.Background(), "a", "b"))
}

func (s *CacheTestSuite) TestGetOrSet_HitSkipsLoader() {
	val := cachedDist{Label: "Fever", Count: 5}
	raw, _ := json.Marshal(val)
	s.mock.ExpectGet("adr:k").SetVal(string(raw))

	var dest cachedDist
	err := s.cache.GetOrSet(context.Background(), "k", &dest, time.Minute,
		func(context.Context) (interface{}, error) {
			s.Fail("loader must not run on a hit")
			return nil, nil
		})
	s.NoError(err)
	s.Equal(val, dest)
}

func (s *CacheTestSuite) TestGetOrSet_MissLoadsAndCaches() {
	val := cachedDist{Label: "Nausea", Count: 2}
	raw, _ := json.Marshal(val)

	s.mock.ExpectGet("adr:k").RedisNil()
	s.mock.ExpectSet("adr:k", raw, time.Minute).SetVal("OK")

	var dest cachedDist
	err := s.cache.GetOrSet(context.Background(), "k", &dest, time.Minute,
		func(context.Context) (interface{}, error) { return val, nil })
	s.NoError(err)
	s.Equal(val, dest)
}

func (s *CacheTestSuite) TestGetOrSet_LoaderErrorPropagates() {
	s.mock.ExpectGet("adr:k").RedisNil()

	var dest cachedDist
	err := s.cache.GetOrSet(context.Background(), "k", &dest, time.Minute,
		func(context.Context) (interface{}, error) {
			return nil, pkgerrors.New(pkgerrors.CodeDatabaseError, "load failed")
		})
	s.Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.CodeDatabaseError))
}

func TestCacheTestSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}
