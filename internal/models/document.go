package models

// Document is satisfied by a pointer to a stored entity.
type Document[T any] interface {
	*T
	GetID() string
	SetID(id string)
}

// Patch is a partial update for an entity of type T. ApplyTo reports whether
// any field of entity was changed.
type Patch[T any] interface {
	ApplyTo(entity *T) bool
}

// applyField copies *src into dst when src is set and differs from dst.
func applyField(dst *string, src *string) bool {
	if src == nil || *src == *dst {
		return false
	}
	*dst = *src
	return true
}
