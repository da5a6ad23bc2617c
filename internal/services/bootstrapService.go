package services

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/rs/zerolog/log"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

var seedCategories = []models.Category{
	{Description: "Fruits"},
	{Description: "Dried"},
	{Description: "Fresh"},
	{Description: "Exotic"},
	{Description: "Nuts"},
}

var seedVendors = []models.Vendor{
	{FirstName: "Joe", LastName: "Buck"},
	{FirstName: "Michael", LastName: "Weston"},
	{FirstName: "Jessie", LastName: "Waters"},
	{FirstName: "Bill", LastName: "Nershi"},
	{FirstName: "Jimmy", LastName: "Buffett"},
}

// BootstrapService loads sample data into empty collections.
type BootstrapService struct {
	categoryRepo repositories.CategoryRepository
	vendorRepo   repositories.VendorRepository
}

func NewBootstrapService(categoryRepo repositories.CategoryRepository, vendorRepo repositories.VendorRepository) *BootstrapService {
	return &BootstrapService{categoryRepo: categoryRepo, vendorRepo: vendorRepo}
}

func (b *BootstrapService) Seed(ctx context.Context) error {
	if err := seed(ctx, b.categoryRepo, "category", seedCategories); err != nil {
		return err
	}
	return seed(ctx, b.vendorRepo, "vendor", seedVendors)
}

func seed[T any](ctx context.Context, repo repositories.Repository[T], resource string, data []T) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count %s documents: %w", resource, err)
	}
	if count > 0 {
		log.Info().Str("resource", resource).Int64("count", count).Msg("Collection not empty, skipping seed")
		return nil
	}

	var seeded int
	for _, err := range repo.SaveAll(ctx, entities(slices.Clone(data))) {
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", resource, err)
		}
		seeded++
	}
	log.Info().Str("resource", resource).Int("count", seeded).Msg("Seed data loaded")
	return nil
}

func entities[T any](items []T) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for i := range items {
			if !yield(&items[i], nil) {
				return
			}
		}
	}
}
