package models

type Vendor struct {
	ID        string `json:"id" bson:"_id"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
}

func (v *Vendor) GetID() string   { return v.ID }
func (v *Vendor) SetID(id string) { v.ID = id }

type VendorPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

func (p VendorPatch) ApplyTo(vendor *Vendor) bool {
	changed := applyField(&vendor.FirstName, p.FirstName)
	if applyField(&vendor.LastName, p.LastName) {
		changed = true
	}
	return changed
}
