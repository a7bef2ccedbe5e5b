package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type database struct {
	db *gorm.DB
}

// New creates a new database connection
func New(ctx context.Context, dialect string, dsn string, config *gorm.Config) (Database, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}
	config.TranslateError = true

	var db *gorm.DB
	var err error

	switch dialect {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), config)
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), config)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	if err := db.AutoMigrate(&Resolver{}); err != nil {
		return nil, err
	}

	if dialect == "sqlite" {
		db.Exec("PRAGMA foreign_keys = ON")
		// Uniqueness of the pair holds among live rows only, so a partial
		// index backs the transactional check. MySQL has no partial indexes;
		// there the transactional check is the sole arbiter.
		db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_resolver_live_pair ON resolvers(provider, hostname) WHERE is_deleted = 0")
	}

	return &database{db: db}, nil
}

func (d *database) ListResolvers(opts ListOptions) ([]Resolver, error) {
	opts.Normalize()

	q := d.db.Model(&Resolver{})
	if opts.Provider != "" {
		q = q.Where("provider = ?", opts.Provider)
	}
	if opts.Hostname != "" {
		q = q.Where("hostname = ?", opts.Hostname)
	}
	if !opts.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	resolvers := []Resolver{}
	sql := q.Order("id DESC").Limit(opts.Limit).Offset(opts.Offset).Find(&resolvers)
	return resolvers, sql.Error
}

func (d *database) GetResolverByID(id uint, includeDeleted bool) (Resolver, error) {
	q := d.db.Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	var rec Resolver
	sql := q.Limit(1).Find(&rec)
	if sql.Error != nil {
		return Resolver{}, sql.Error
	}
	if rec.ID == 0 {
		return Resolver{}, ErrNotFound
	}
	return rec, nil
}

func (d *database) InsertResolver(rec Resolver) (Resolver, error) {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		taken, err := livePairExists(tx, rec.Provider, rec.Hostname, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrConflict
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Resolver{}, ErrConflict
		}
		return Resolver{}, err
	}
	return rec, nil
}

func (d *database) UpdateResolverByID(id uint, updates map[string]interface{}) (Resolver, error) {
	var rec Resolver
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Where("id = ? AND is_deleted = ?", id, false).Limit(1).Find(&rec)
		if sql.Error != nil {
			return sql.Error
		}
		if rec.ID == 0 {
			return ErrNotFound
		}

		provider, hostname := rec.Provider, rec.Hostname
		if v, ok := updates["provider"].(string); ok {
			provider = v
		}
		if v, ok := updates["hostname"].(string); ok {
			hostname = v
		}
		if provider != rec.Provider || hostname != rec.Hostname {
			taken, err := livePairExists(tx, provider, hostname, id)
			if err != nil {
				return err
			}
			if taken {
				return ErrConflict
			}
		}

		sql = tx.Model(&rec).Updates(updates)
		if sql.Error != nil {
			return sql.Error
		}
		if sql.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Resolver{}, ErrConflict
		}
		return Resolver{}, err
	}
	return rec, nil
}

func (d *database) SoftDeleteResolverByID(id uint) (Resolver, error) {
	var rec Resolver
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Model(&Resolver{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if sql.Error != nil {
			return sql.Error
		}
		if sql.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("id = ?", id).Take(&rec).Error
	})
	if err != nil {
		return Resolver{}, err
	}
	return rec, nil
}

func livePairExists(tx *gorm.DB, provider, hostname string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&Resolver{}).
		Where("provider = ? AND hostname = ? AND is_deleted = ?", provider, hostname, false)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
