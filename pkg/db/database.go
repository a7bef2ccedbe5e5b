package db

import (
	"errors"
)

var (
	// ErrNotFound covers both a nonexistent id and an already-deleted row.
	ErrNotFound = errors.New("resolver not found")
	// ErrConflict means a non-deleted row with the same (provider, hostname)
	// pair already exists.
	ErrConflict = errors.New("a resolver with the same provider and hostname already exists")
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ListOptions are optional equality filters plus paging for ListResolvers.
// Deleted rows are excluded unless IncludeDeleted is set.
type ListOptions struct {
	Provider       string
	Hostname       string
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// Normalize clamps paging to the supported range. Non-positive or missing
// limits fall back to the default, negative offsets to zero.
func (o *ListOptions) Normalize() {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

type Database interface {
	ListResolvers(opts ListOptions) ([]Resolver, error)
	GetResolverByID(id uint, includeDeleted bool) (Resolver, error)
	InsertResolver(rec Resolver) (Resolver, error)
	UpdateResolverByID(id uint, updates map[string]interface{}) (Resolver, error)
	SoftDeleteResolverByID(id uint) (Resolver, error)
}
