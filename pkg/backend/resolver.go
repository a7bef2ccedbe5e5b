package backend

import (
	"context"
	"fmt"
	"sort"

	"github.com/driftdns/resolver-dns/pkg/db"
	"github.com/driftdns/resolver-dns/pkg/dns"
	"github.com/driftdns/resolver-dns/pkg/model"
	"github.com/driftdns/resolver-dns/pkg/validate"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

// SyncError reports a DNS sync failure that happened after the local
// mutation already committed. The record it carries is the post-mutation
// state; the store is never rolled back on sync failure.
type SyncError struct {
	Action string
	Record db.Resolver
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("resolver %d was %s but the DNS sync failed: %v", e.Record.ID, e.Action, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

type backend struct {
	db  db.Database
	dns dns.Reconciler
}

// NewBackend wires the resolver service. Both handles are explicit
// parameters; nothing here reaches for ambient singletons.
func NewBackend(database db.Database, reconciler dns.Reconciler) Backend {
	return &backend{
		db:  database,
		dns: reconciler,
	}
}

func (b *backend) List(_ context.Context, opts db.ListOptions) ([]db.Resolver, error) {
	return b.db.ListResolvers(opts)
}

func (b *backend) Get(_ context.Context, id uint, includeDeleted bool) (db.Resolver, error) {
	return b.db.GetResolverByID(id, includeDeleted)
}

func (b *backend) Create(ctx context.Context, payload model.ResolverPayload) (db.Resolver, error) {
	fields, errs := validate.Resolver(payload, validate.ModeCreate)
	if len(errs) > 0 {
		return db.Resolver{}, &validate.Error{Messages: errs}
	}

	rec := db.Resolver{
		Provider: *fields.Provider,
		Hostname: *fields.Hostname,
	}
	if fields.Alias != nil {
		rec.Alias = *fields.Alias
	}
	if fields.IPv4 != nil {
		rec.IPv4 = *fields.IPv4
	}

	created, err := b.db.InsertResolver(rec)
	if err != nil {
		return db.Resolver{}, err
	}
	logrus.Debugf("created resolver %d (%s/%s)", created.ID, created.Provider, created.Hostname)

	if created.IPv4 != "" {
		if err := b.dns.Reconcile(ctx, created.Hostname, created.IPv4); err != nil {
			return created, &SyncError{Action: "created", Record: created, Err: err}
		}
	}

	return created, nil
}

func (b *backend) Update(ctx context.Context, id uint, payload model.ResolverPayload) (db.Resolver, error) {
	fields, errs := validate.Resolver(payload, validate.ModeUpdate)
	if len(errs) > 0 {
		return db.Resolver{}, &validate.Error{Messages: errs}
	}

	current, err := b.db.GetResolverByID(id, false)
	if err != nil {
		return db.Resolver{}, err
	}

	updates := map[string]interface{}{}
	if fields.Provider != nil {
		updates["provider"] = *fields.Provider
	}
	if fields.Hostname != nil {
		updates["hostname"] = *fields.Hostname
	}
	if fields.Alias != nil {
		updates["alias"] = *fields.Alias
	}
	if fields.IPv4 != nil {
		updates["ipv4"] = *fields.IPv4
	}

	submitted := maps.Keys(updates)
	sort.Strings(submitted)
	logrus.Debugf("updating resolver %d fields %v", id, submitted)

	updated, err := b.db.UpdateResolverByID(id, updates)
	if err != nil {
		return db.Resolver{}, err
	}

	// Sync only when the caller submitted a new, non-empty address. A
	// cleared address is never un-synced from the provider.
	if fields.IPv4 != nil && updated.IPv4 != current.IPv4 && updated.IPv4 != "" {
		if err := b.dns.Reconcile(ctx, updated.Hostname, updated.IPv4); err != nil {
			return updated, &SyncError{Action: "updated", Record: updated, Err: err}
		}
	}

	return updated, nil
}

func (b *backend) Delete(_ context.Context, id uint) (db.Resolver, error) {
	deleted, err := b.db.SoftDeleteResolverByID(id)
	if err != nil {
		return db.Resolver{}, err
	}
	logrus.Debugf("soft-deleted resolver %d (%s/%s)", deleted.ID, deleted.Provider, deleted.Hostname)
	return deleted, nil
}
