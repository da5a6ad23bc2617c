package repositories

import (
	"context"
	"errors"
	"iter"

	"catalog/internal/database"
	"catalog/internal/models"
)

// ErrNotFound is returned when no document matches the requested identifier.
var ErrNotFound = errors.New("document not found")

// Repository is the storage contract shared by every resource. FindAll and
// SaveAll are lazy: nothing happens until the returned sequence is ranged over,
// and ranging stops at the first error.
type Repository[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	FindAll(ctx context.Context) iter.Seq2[*T, error]
	Save(ctx context.Context, entity *T) (*T, error)
	SaveAll(ctx context.Context, entities iter.Seq2[*T, error]) iter.Seq2[*T, error]
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository = Repository[models.Category]

type VendorRepository = Repository[models.Vendor]

func NewCategoryRepository(db database.Service) CategoryRepository {
	return newMongoRepository[models.Category](db, "category")
}

func NewVendorRepository(db database.Service) VendorRepository {
	return newMongoRepository[models.Vendor](db, "vendor")
}

func NewInMemoryCategoryRepository() CategoryRepository {
	return NewMemoryRepository[models.Category]()
}

func NewInMemoryVendorRepository() VendorRepository {
	return NewMemoryRepository[models.Vendor]()
}

// saveAll drives save over entities, yielding each persisted entity in input order.
func saveAll[T any](ctx context.Context, entities iter.Seq2[*T, error], save func(context.Context, *T) (*T, error)) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for entity, err := range entities {
			if err != nil {
				yield(nil, err)
				return
			}
			saved, err := save(ctx, entity)
			if !yield(saved, err) || err != nil {
				return
			}
		}
	}
}
