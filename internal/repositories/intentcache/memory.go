package intentcache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/sagaforge/progression-api/internal/entities/saga"
	"github.com/sagaforge/progression-api/internal/errors"
	"github.com/sagaforge/progression-api/internal/pkg/clock"
)

// DefaultMemoryCapacity bounds the in-memory cache when no capacity is given.
const DefaultMemoryCapacity = 1024

type memoryEntry struct {
	key         string
	characterID string
	intent      *saga.BuildIntent
	expiresAt   time.Time
}

// MemoryConfig contains configuration for the in-memory intent cache.
type MemoryConfig struct {
	// Capacity is the maximum number of entries; least recently used
	// entries are evicted beyond it. Zero means DefaultMemoryCapacity.
	Capacity int
	// TTL is the entry lifetime. Zero means no expiry.
	TTL   time.Duration
	Clock clock.Clock
}

type memoryRepository struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	clock    clock.Clock

	entries map[string]*list.Element
	// byChar indexes entry keys per character for Invalidate
	byChar map[string]map[string]struct{}
	lru    *list.List
}

// NewMemoryRepository creates an in-memory LRU intent cache. Suitable for
// single-instance deployments; use the Redis repository when running more
// than one replica.
func NewMemoryRepository(cfg *MemoryConfig) Repository {
	if cfg == nil {
		cfg = &MemoryConfig{}
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &memoryRepository{
		capacity: capacity,
		ttl:      cfg.TTL,
		clock:    clk,
		entries:  make(map[string]*list.Element),
		byChar:   make(map[string]map[string]struct{}),
		lru:      list.New(),
	}
}

func (r *memoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.PendingHash == "" {
		return nil, errors.InvalidArgument(errPendingHashEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := intentKey(input.CharacterID, input.PendingHash)
	elem, ok := r.entries[key]
	if !ok {
		return nil, errors.NotFoundf("no cached intent for character %s", input.CharacterID)
	}

	entry := elem.Value.(*memoryEntry)
	if r.ttl > 0 && r.clock.Now().After(entry.expiresAt) {
		r.remove(elem)
		return nil, errors.NotFoundf("no cached intent for character %s", input.CharacterID)
	}

	r.lru.MoveToFront(elem)
	return &GetOutput{Intent: entry.intent}, nil
}

func (r *memoryRepository) Set(_ context.Context, input SetInput) (*SetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.PendingHash == "" {
		return nil, errors.InvalidArgument(errPendingHashEmpty)
	}
	if input.Intent == nil {
		return nil, errors.InvalidArgument(errIntentNil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := intentKey(input.CharacterID, input.PendingHash)
	entry := &memoryEntry{
		key:         key,
		characterID: input.CharacterID,
		intent:      input.Intent,
	}
	if r.ttl > 0 {
		entry.expiresAt = r.clock.Now().Add(r.ttl)
	}

	if elem, ok := r.entries[key]; ok {
		elem.Value = entry
		r.lru.MoveToFront(elem)
		return &SetOutput{}, nil
	}

	elem := r.lru.PushFront(entry)
	r.entries[key] = elem
	if r.byChar[input.CharacterID] == nil {
		r.byChar[input.CharacterID] = make(map[string]struct{})
	}
	r.byChar[input.CharacterID][key] = struct{}{}

	for r.lru.Len() > r.capacity {
		r.remove(r.lru.Back())
	}

	return &SetOutput{}, nil
}

func (r *memoryRepository) Invalidate(_ context.Context, input InvalidateInput) (*InvalidateOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for key := range r.byChar[input.CharacterID] {
		if elem, ok := r.entries[key]; ok {
			r.remove(elem)
			dropped++
		}
	}

	return &InvalidateOutput{Dropped: dropped}, nil
}

// remove drops an entry; caller must hold the lock.
func (r *memoryRepository) remove(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*memoryEntry)
	r.lru.Remove(elem)
	delete(r.entries, entry.key)
	if keys, ok := r.byChar[entry.characterID]; ok {
		delete(keys, entry.key)
		if len(keys) == 0 {
			delete(r.byChar, entry.characterID)
		}
	}
}
