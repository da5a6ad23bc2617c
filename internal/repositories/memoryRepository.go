package repositories

import (
	"context"
	"iter"
	"sync"

	"github.com/google/uuid"

	"catalog/internal/models"
)

// memoryRepository keeps documents in process memory in insertion order.
// Stored values are copied on the way in and out.
type memoryRepository[T any, PT models.Document[T]] struct {
	mu    sync.RWMutex
	order []string
	docs  map[string]T
}

func NewMemoryRepository[T any, PT models.Document[T]]() Repository[T] {
	return &memoryRepository[T, PT]{docs: make(map[string]T)}
}

func (r *memoryRepository[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (r *memoryRepository[T, PT]) FindAll(ctx context.Context) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		r.mu.RLock()
		snapshot := make([]T, 0, len(r.order))
		for _, id := range r.order {
			snapshot = append(snapshot, r.docs[id])
		}
		r.mu.RUnlock()

		for i := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&snapshot[i], nil) {
				return
			}
		}
	}
}

func (r *memoryRepository[T, PT]) Save(ctx context.Context, entity *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := PT(entity)
	if doc.GetID() == "" {
		doc.SetID(uuid.NewString())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := doc.GetID()
	if _, exists := r.docs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.docs[id] = *entity

	saved := *entity
	return &saved, nil
}

func (r *memoryRepository[T, PT]) SaveAll(ctx context.Context, entities iter.Seq2[*T, error]) iter.Seq2[*T, error] {
	return saveAll(ctx, entities, r.Save)
}

func (r *memoryRepository[T, PT]) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}
