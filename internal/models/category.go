package models

type Category struct {
	ID          string `json:"id" bson:"_id"`
	Description string `json:"description" bson:"description"`
}

func (c *Category) GetID() string   { return c.ID }
func (c *Category) SetID(id string) { c.ID = id }

type CategoryPatch struct {
	Description *string `json:"description,omitempty"`
}

func (p CategoryPatch) ApplyTo(category *Category) bool {
	return applyField(&category.Description, p.Description)
}
