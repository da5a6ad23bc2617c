package services

import (
	"catalog/internal/models"
	"catalog/internal/repositories"
)

type VendorService = ResourceService[models.Vendor, models.VendorPatch]

func NewVendorService(vendorRepo repositories.VendorRepository) VendorService {
	return newResourceService[models.Vendor, *models.Vendor, models.VendorPatch](vendorRepo, "vendor")
}
