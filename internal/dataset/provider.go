package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"comparador/internal/core"
)

// Provider owns the loaded table: an immutable snapshot shared by every
// query, replaced wholesale on reload. The generation counter lets caches
// key their entries to a specific snapshot.
type Provider struct {
	src Source

	mu    sync.RWMutex
	table *core.Table
	gen   uint64
}

// NewProvider wraps a source. Call Load before serving queries.
func NewProvider(src Source) *Provider {
	return &Provider{src: src}
}

// Load performs the initial dataset load. The process must not serve
// queries if it fails.
func (p *Provider) Load(ctx context.Context) error {
	table, err := p.src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	p.mu.Lock()
	p.table = table
	p.gen++
	p.mu.Unlock()

	slog.InfoContext(ctx, "Dataset loaded", "rows", table.Len(), "generation", p.Generation())
	return nil
}

// Reload loads a fresh snapshot and swaps it in atomically. In-flight
// queries keep the snapshot they started with.
func (p *Provider) Reload(ctx context.Context) error {
	return p.Load(ctx)
}

// Table returns the current snapshot and its generation.
func (p *Provider) Table() (*core.Table, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table, p.gen
}

// Generation returns the current snapshot generation.
func (p *Provider) Generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gen
}
