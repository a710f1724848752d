// Package cache implements the cache overlay for the first user record.
//
// The overlay keeps no memoized value and runs no expiry timer. Its whole
// contribution is a pair of outbound cache-control signals: reads of the
// reserved record advertise a max-age, writes through the overlay ask every
// intermediary to evict the named cache. Staleness within the advertised
// window is the client's responsibility.
package cache

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"userResourceService/models"
)

const (
	// ReservedID is the only user id served through the overlay.
	ReservedID uint64 = 1
	// MaxAge is the advertised lifetime of a cached read.
	MaxAge = 60 * time.Second
	// Name identifies the logical cache in evict directives.
	Name = "employeeID1"

	// HeaderEvict carries the evicted cache name on write responses.
	HeaderEvict = "X-Cache-Evict"
)

// Store is the subset of the user repository the overlay needs.
type Store interface {
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	Update(ctx context.Context, u models.User) (*models.User, error)
}

// Directive is a cache-control signal to attach to a response.
// The zero value attaches nothing.
type Directive struct {
	MaxAge    time.Duration
	EvictName string
}

// Cacheable returns the read directive for the reserved record.
func Cacheable() Directive { return Directive{MaxAge: MaxAge} }

// EvictAll returns the write directive that invalidates the named cache.
func EvictAll() Directive { return Directive{EvictName: Name} }

// IsZero reports whether d carries no signal.
func (d Directive) IsZero() bool { return d.MaxAge <= 0 && d.EvictName == "" }

// CacheControl renders the Cache-Control header value, empty for the zero value.
func (d Directive) CacheControl() string {
	switch {
	case d.EvictName != "":
		return "no-cache"
	case d.MaxAge > 0:
		return "max-age=" + strconv.Itoa(int(d.MaxAge/time.Second))
	default:
		return ""
	}
}

// Apply writes the directive onto h.
func (d Directive) Apply(h http.Header) {
	if v := d.CacheControl(); v != "" {
		h.Set("Cache-Control", v)
	}
	if d.EvictName != "" {
		h.Set(HeaderEvict, d.EvictName+"; all-entries")
	}
}

// Overlay wraps the fixed-id read and its paired write.
type Overlay struct {
	store Store
}

func NewOverlay(store Store) *Overlay {
	return &Overlay{store: store}
}

// GetCachedFirst loads the reserved record and returns the read directive.
// On failure no directive is returned.
func (o *Overlay) GetCachedFirst(ctx context.Context) (*models.User, Directive, error) {
	u, err := o.store.GetByID(ctx, ReservedID)
	if err != nil {
		return nil, Directive{}, err
	}
	return u, Cacheable(), nil
}

// EvictAndUpdate updates u and returns the evict directive.
func (o *Overlay) EvictAndUpdate(ctx context.Context, u models.User) (*models.User, Directive, error) {
	out, err := o.store.Update(ctx, u)
	if err != nil {
		return nil, Directive{}, err
	}
	return out, EvictAll(), nil
}

// DirectiveForWrite returns the evict directive when a write touches the
// reserved record through any path, the zero directive otherwise.
func DirectiveForWrite(id uint64) Directive {
	if id == ReservedID {
		return EvictAll()
	}
	return Directive{}
}
