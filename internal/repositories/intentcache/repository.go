// Package intentcache provides caching for computed build-intent profiles.
// Entries are keyed by character ID plus a hash of the pending selections,
// so a staged pick never reuses an intent computed for a different staging.
package intentcache

//go:generate mockgen -destination=mock/mock_repository.go -package=intentcachemock github.com/sagaforge/progression-api/internal/repositories/intentcache Repository

import (
	"context"

	"github.com/sagaforge/progression-api/internal/entities/saga"
)

// Repository defines the interface for build-intent caching
type Repository interface {
	// Get retrieves a cached intent
	// Returns errors.NotFound on a cache miss
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set stores a computed intent
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Invalidate drops all cached intents for a character
	// Returns errors.Internal for storage failures
	Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error)
}

// GetInput defines the input for a cache lookup
type GetInput struct {
	CharacterID string
	PendingHash string
}

// GetOutput defines the output for a cache lookup
type GetOutput struct {
	Intent *saga.BuildIntent
}

// SetInput defines the input for storing an intent
type SetInput struct {
	CharacterID string
	PendingHash string
	Intent      *saga.BuildIntent
}

// SetOutput defines the output for storing an intent
type SetOutput struct{}

// InvalidateInput defines the input for invalidating a character's entries
type InvalidateInput struct {
	CharacterID string
}

// InvalidateOutput defines the output for invalidation
type InvalidateOutput struct {
	// Dropped is the number of entries removed
	Dropped int
}
