package entity

import "gorm.io/gorm"

// Registry is the GORM-backed Resolver used in production.
type Registry struct {
	stores map[Type]Store
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{stores: map[Type]Store{
		TypeResource:        &resourceStore{db: db},
		TypeReview:          &reviewStore{db: db},
		TypeResourceComment: &resourceCommentStore{db: db},
		TypeReviewComment:   &reviewCommentStore{db: db},
	}}
}

func (r *Registry) Store(t Type) (Store, bool) {
	s, ok := r.stores[t]
	return s, ok
}
