package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the gorm backed storage for accounts, loyalty, promotions,
// catalog and invoices.
type Repository struct {
	db        *gorm.DB
	forUpdate bool
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to tx that locks member rows it reads.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx, forUpdate: true}
}

// Transaction runs fn with a transactional repository.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository) locking(ctx context.Context) *gorm.DB {
	if r.forUpdate {
		return r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.conn(ctx)
}

// first loads a single record; not found is reported as (false, nil).
func first(q *gorm.DB, dest any, what string) (bool, error) {
	if err := q.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrapf(err, "query %s", what)
	}
	return true, nil
}

func paginate(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit).Offset(*limit * (*page - 1))
	}
	return query
}
