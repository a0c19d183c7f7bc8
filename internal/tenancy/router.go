// Package tenancy resolves a tenant key to a live handle on that tenant's own database.
package tenancy

import (
	"context"
	"fmt"
	"sync"

	"payroll-backend/internal/apperr"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Registry looks up where a tenant's database lives. An empty location means the
// tenant exists but has not been provisioned yet.
type Registry interface {
	DatabaseLocation(ctx context.Context, tenantKey string) (string, error)
}

// Opener turns a location string into an open handle.
type Opener func(location string) (*gorm.DB, error)

const DefaultCapacity = 64

// Router caches one handle per tenant, bounded by capacity. The least recently used
// handle is closed when a new tenant pushes it out.
type Router struct {
	registry Registry
	open     Opener
	log      *zap.Logger

	handles *lru.Cache[string, *gorm.DB] // internally synchronized
	mu      sync.Mutex                   // serializes the miss path
}

func NewRouter(registry Registry, open Opener, capacity int, log *zap.Logger) (*Router, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{registry: registry, open: open, log: log}

	cache, err := lru.NewWithEvict[string, *gorm.DB](capacity, r.onEvict)
	if err != nil {
		return nil, err
	}
	r.handles = cache
	return r, nil
}

// Resolve returns the cached handle for tenantKey, opening it on first use.
// Concurrent first resolutions of the same key open exactly one handle.
func (r *Router) Resolve(ctx context.Context, tenantKey string) (*gorm.DB, error) {
	if db, ok := r.handles.Get(tenantKey); ok {
		return db.WithContext(ctx), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another request may have opened it while we waited
	if db, ok := r.handles.Get(tenantKey); ok {
		return db.WithContext(ctx), nil
	}

	location, err := r.registry.DatabaseLocation(ctx, tenantKey)
	if err != nil {
		return nil, err
	}
	if location == "" {
		return nil, apperr.Wrap(apperr.ErrTenantNotProvisioned, "%s", tenantKey)
	}

	db, err := r.open(location)
	if err != nil {
		e := *apperr.ErrDatabase
		e.Message = fmt.Sprintf("open tenant %s database", tenantKey)
		e.Err = err
		return nil, &e
	}

	r.handles.Add(tenantKey, db)
	r.log.Info("tenant database opened", zap.String("tenant", tenantKey), zap.Int("cached", r.handles.Len()))
	return db.WithContext(ctx), nil
}

// Forget drops and closes a cached handle, e.g. after a tenant's location changes.
func (r *Router) Forget(tenantKey string) {
	r.handles.Remove(tenantKey)
}

func (r *Router) Len() int {
	return r.handles.Len()
}

// Close closes every cached handle.
func (r *Router) Close() {
	r.handles.Purge()
}

func (r *Router) onEvict(tenantKey string, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		r.log.Warn("closing evicted tenant database", zap.String("tenant", tenantKey), zap.Error(err))
		return
	}
	r.log.Info("tenant database closed", zap.String("tenant", tenantKey))
}
