package server

import (
	"context"

	"league-data-service/internal/warm"
)

// Warmer abstracts the cache warmer so tests can substitute a stub.
type Warmer interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() warm.Status
}

type noopWarmer struct{}

func (noopWarmer) Start(context.Context)      {}
func (noopWarmer) Stop(context.Context) error { return nil }
func (noopWarmer) Status() warm.Status        { return warm.Status{} }
