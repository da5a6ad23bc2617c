package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"
)

type CategoryHandler = ResourceHandler[models.Category, models.CategoryPatch]

func NewCategoryHandler(service services.CategoryService) *CategoryHandler {
	return newResourceHandler[models.Category, models.CategoryPatch](service, "category")
}
