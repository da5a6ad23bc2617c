package services

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/rs/zerolog/log"

	"catalog/internal/metrics"
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// ResourceService defines the operations exposed for one resource collection.
type ResourceService[T any, P models.Patch[T]] interface {
	List(ctx context.Context) iter.Seq2[*T, error]
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entities iter.Seq2[*T, error]) (int, error)
	Update(ctx context.Context, id string, entity *T) (*T, error)
	Patch(ctx context.Context, id string, patch P) (*T, error)
}

type resourceServiceImpl[T any, PT models.Document[T], P models.Patch[T]] struct {
	repo     repositories.Repository[T]
	resource string
}

func newResourceService[T any, PT models.Document[T], P models.Patch[T]](repo repositories.Repository[T], resource string) ResourceService[T, P] {
	return &resourceServiceImpl[T, PT, P]{repo: repo, resource: resource}
}

func (s *resourceServiceImpl[T, PT, P]) List(ctx context.Context) iter.Seq2[*T, error] {
	log.Debug().Str("resource", s.resource).Msg("Listing entities")
	return s.repo.FindAll(ctx)
}

func (s *resourceServiceImpl[T, PT, P]) Get(ctx context.Context, id string) (*T, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Debug().Str("resource", s.resource).Str("id", id).Msg("Entity not found")
			return nil, err
		}
		log.Error().Err(err).Str("resource", s.resource).Str("id", id).Msg("Error finding entity by ID")
		return nil, err
	}
	return entity, nil
}

// Create persists every entity in the stream and returns how many were saved.
// Entities saved before a failure stay saved.
func (s *resourceServiceImpl[T, PT, P]) Create(ctx context.Context, entities iter.Seq2[*T, error]) (int, error) {
	created := 0
	for _, err := range s.repo.SaveAll(ctx, entities) {
		if err != nil {
			log.Error().Err(err).Str("resource", s.resource).Int("saved", created).Msg("Create stream failed")
			return created, fmt.Errorf("failed to create %s: %w", s.resource, err)
		}
		created++
		metrics.EntitiesCreatedTotal.WithLabelValues(s.resource).Inc()
	}
	log.Info().Str("resource", s.resource).Int("count", created).Msg("Entities created")
	return created, nil
}

// Update stores entity under id, replacing whatever id the entity carried.
func (s *resourceServiceImpl[T, PT, P]) Update(ctx context.Context, id string, entity *T) (*T, error) {
	PT(entity).SetID(id)

	saved, err := s.repo.Save(ctx, entity)
	if err != nil {
		log.Error().Err(err).Str("resource", s.resource).Str("id", id).Msg("Failed to update entity")
		return nil, err
	}
	log.Info().Str("resource", s.resource).Str("id", id).Msg("Entity updated")
	return saved, nil
}

// Patch fetches the stored entity, applies the fields of patch that differ and
// saves only when something changed.
func (s *resourceServiceImpl[T, PT, P]) Patch(ctx context.Context, id string, patch P) (*T, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.PatchesTotal.WithLabelValues(s.resource, "not_found").Inc()
			log.Warn().Str("resource", s.resource).Str("id", id).Msg("Cannot patch missing entity")
			return nil, fmt.Errorf("%s %q: %w", s.resource, id, err)
		}
		log.Error().Err(err).Str("resource", s.resource).Str("id", id).Msg("Error finding entity to patch")
		return nil, err
	}

	if !patch.ApplyTo(existing) {
		metrics.PatchesTotal.WithLabelValues(s.resource, "unchanged").Inc()
		log.Debug().Str("resource", s.resource).Str("id", id).Msg("Patch changed nothing")
		return existing, nil
	}

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		log.Error().Err(err).Str("resource", s.resource).Str("id", id).Msg("Failed to save patched entity")
		return nil, err
	}
	metrics.PatchesTotal.WithLabelValues(s.resource, "changed").Inc()
	log.Info().Str("resource", s.resource).Str("id", id).Msg("Entity patched")
	return saved, nil
}
