package registry

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ros2types/ros2types/internal/ketree"
)

// Observer receives load and flatten events, typically to update metrics.
type Observer interface {
	LoadFailed(kind string)
	TypesLoaded(total int)
	DependencyMissing()
}

type nopObserver struct{}

func (nopObserver) LoadFailed(string)  {}
func (nopObserver) TypesLoaded(int)    {}
func (nopObserver) DependencyMissing() {}

// Registry indexes TypeRecords by full name. It is filled by the load
// methods and must not be modified once shared; after loading, any number of
// goroutines may call Lookup, Query, Flatten and BuildDependencyTree.
type Registry struct {
	types *ketree.Tree[*TypeRecord]
	log   zerolog.Logger
	obs   Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for load and flatten diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithObserver sets the receiver of load and flatten events.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		if o != nil {
			r.obs = o
		}
	}
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		types: ketree.New[*TypeRecord](),
		log:   zerolog.Nop(),
		obs:   nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the number of records in the registry.
func (r *Registry) Len() int { return r.types.Len() }

// Insert adds rec under its full name. It returns true if rec was added.
// If a record with the same name and hash is already present nothing
// changes and Insert returns false with a nil error. If the present record
// has a different hash, a *ConflictError is returned and the present record
// is kept.
func (r *Registry) Insert(rec *TypeRecord) (bool, error) {
	if existing, ok := r.types.Get(rec.FullName); ok {
		if existing.Hash == rec.Hash {
			return false, nil
		}
		return false, &ConflictError{
			FullName:     rec.FullName,
			ExistingPath: existing.DescriptionPath,
			NewPath:      rec.DescriptionPath,
			ExistingHash: existing.Hash,
			NewHash:      rec.Hash,
		}
	}
	if err := r.types.Insert(rec.FullName, rec); err != nil {
		return false, &ValidationError{Path: rec.DescriptionPath, TypeName: rec.FullName, Reason: err.Error()}
	}
	return true, nil
}

// Lookup returns the record named exactly fullName.
func (r *Registry) Lookup(fullName string) (*TypeRecord, bool) {
	return r.types.Get(fullName)
}

// Query returns every record whose full name matches pattern. "*" matches one
// name segment and "**" matches any number of them.
func (r *Registry) Query(pattern string) ([]*TypeRecord, error) {
	recs, err := r.types.Query(pattern)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", pattern, err)
	}
	r.log.Debug().Str("pattern", pattern).Int("matches", len(recs)).Msg("searched types")
	return recs, nil
}
