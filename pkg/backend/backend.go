package backend

import (
	"context"

	"github.com/driftdns/resolver-dns/pkg/db"
	"github.com/driftdns/resolver-dns/pkg/model"
)

type Backend interface {
	List(ctx context.Context, opts db.ListOptions) ([]db.Resolver, error)
	Get(ctx context.Context, id uint, includeDeleted bool) (db.Resolver, error)
	Create(ctx context.Context, payload model.ResolverPayload) (db.Resolver, error)
	Update(ctx context.Context, id uint, payload model.ResolverPayload) (db.Resolver, error)
	Delete(ctx context.Context, id uint) (db.Resolver, error)
}
