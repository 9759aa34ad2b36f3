package intentcache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/sagaforge/progression-api/internal/errors"
	"github.com/sagaforge/progression-api/internal/pkg/clock"
	"github.com/sagaforge/progression-api/internal/repositories/intentcache"
)

type MemoryCacheTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *MemoryCacheTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *MemoryCacheTestSuite) TestSetAndGet() {
	repo := intentcache.NewMemoryRepository(nil)

	_, err := repo.Set(s.ctx, intentcache.SetInput{
		CharacterID: "char-1",
		PendingHash: "abc",
		Intent:      testIntent(),
	})
	s.Require().NoError(err)

	out, err := repo.Get(s.ctx, intentcache.GetInput{CharacterID: "char-1", PendingHash: "abc"})
	s.Require().NoError(err)
	s.NotNil(out.Intent)
}

func (s *MemoryCacheTestSuite) TestLRUEviction() {
	repo := intentcache.NewMemoryRepository(&intentcache.MemoryConfig{Capacity: 2})

	for i := 0; i < 3; i++ {
		_, err := repo.Set(s.ctx, intentcache.SetInput{
			CharacterID: fmt.Sprintf("char-%d", i),
			PendingHash: "h",
			Intent:      testIntent(),
		})
		s.Require().NoError(err)
	}

	// Oldest entry is evicted
	_, err := repo.Get(s.ctx, intentcache.GetInput{CharacterID: "char-0", PendingHash: "h"})
	s.True(errors.IsNotFound(err))

	_, err = repo.Get(s.ctx, intentcache.GetInput{CharacterID: "char-2", PendingHash: "h"})
	s.NoError(err)
}

func (s *MemoryCacheTestSuite) TestGetRefreshesRecency() {
	repo := intentcache.NewMemoryRepository(&intentcache.MemoryConfig{Capacity: 2})

	for _, id := range []string{"a", "b"} {
		_, err := repo.Set(s.ctx, intentcache.SetInput{CharacterID: id, PendingHash: "h", Intent: testIntent()})
		s.Require().NoError(err)
	}

	// Touch "a" so "b" becomes the eviction candidate
	_, err := repo.Get(s.ctx, intentcache.GetInput{CharacterID: "a", PendingHash: "h"})
	s.Require().NoError(err)

	_, err = repo.Set(s.ctx, intentcache.SetInput{CharacterID: "c", PendingHash: "h", Intent: testIntent()})
	s.Require().NoError(err)

	_, err = repo.Get(s.ctx, intentcache.GetInput{CharacterID: "a", PendingHash: "h"})
	s.NoError(err)
	_, err = repo.Get(s.ctx, intentcache.GetInput{CharacterID: "b", PendingHash: "h"})
	s.True(errors.IsNotFound(err))
}

func (s *MemoryCacheTestSuite) TestTTLExpiry() {
	clk := &clock.Fixed{T: time.Unix(1000, 0)}
	repo := intentcache.NewMemoryRepository(&intentcache.MemoryConfig{
		TTL:   time.Minute,
		Clock: clk,
	})

	_, err := repo.Set(s.ctx, intentcache.SetInput{CharacterID: "char-1", PendingHash: "h", Intent: testIntent()})
	s.Require().NoError(err)

	_, err = repo.Get(s.ctx, intentcache.GetInput{CharacterID: "char-1", PendingHash: "h"})
	s.NoError(err)

	clk.T = clk.T.Add(2 * time.Minute)
	_, err = repo.Get(s.ctx, intentcache.GetInput{CharacterID: "char-1", PendingHash: "h"})
	s.True(errors.IsNotFound(err))
}

func (s *MemoryCacheTestSuite) TestInvalidate() {
	repo := intentcache.NewMemoryRepository(nil)

	for _, hash := range []string{"h1", "h2"} {
		_, err := repo.Set(s.ctx, intentcache.SetInput{CharacterID: "char-1", PendingHash: hash, Intent: testIntent()})
		s.Require().NoError(err)
	}

	out, err := repo.Invalidate(s.ctx, intentcache.InvalidateInput{CharacterID: "char-1"})
	s.Require().NoError(err)
	s.Equal(2, out.Dropped)

	_, err = repo.Get(s.ctx, intentcache.GetInput{CharacterID: "char-1", PendingHash: "h1"})
	s.True(errors.IsNotFound(err))
}

func TestMemoryCacheTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryCacheTestSuite))
}
