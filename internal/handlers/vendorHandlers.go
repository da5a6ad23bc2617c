package handlers

import (
	"catalog/internal/models"
	"catalog/internal/services"
)

type VendorHandler = ResourceHandler[models.Vendor, models.VendorPatch]

func NewVendorHandler(service services.VendorService) *VendorHandler {
	return newResourceHandler[models.Vendor, models.VendorPatch](service, "vendor")
}
