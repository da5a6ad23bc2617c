package services

import (
	"catalog/internal/models"
	"catalog/internal/repositories"
)

type CategoryService = ResourceService[models.Category, models.CategoryPatch]

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return newResourceService[models.Category, *models.Category, models.CategoryPatch](categoryRepo, "category")
}
