// Package entity resolves the four moderatable content kinds behind a common
// capability interface, so the moderation flow never dispatches on raw
// strings.
package entity

import "fmt"

// Type is the closed set of reportable content kinds.
type Type string

const (
	TypeResource        Type = "resource"
	TypeReview          Type = "review"
	TypeResourceComment Type = "resource_comment"
	TypeReviewComment   Type = "review_comment"
)

// Types lists all valid entity types in a stable order.
func Types() []Type {
	return []Type{TypeResource, TypeReview, TypeResourceComment, TypeReviewComment}
}

// Parse validates a wire-format entity type.
func Parse(s string) (Type, bool) {
	switch Type(s) {
	case TypeResource, TypeReview, TypeResourceComment, TypeReviewComment:
		return Type(s), true
	}
	return "", false
}

// DisplayName is the human-readable name used in notification texts.
func (t Type) DisplayName() string {
	switch t {
	case TypeResource:
		return "resource"
	case TypeReview:
		return "course review"
	case TypeResourceComment:
		return "resource comment"
	case TypeReviewComment:
		return "review reply"
	}
	return string(t)
}

// Ref identifies one entity.
type Ref struct {
	Type Type
	ID   uint64
}

func (r Ref) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}
