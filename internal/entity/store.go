package entity

import (
	"errors"

	"github.com/campushare/campushare-backend/internal/models"
)

// ErrNotFound is returned when the referenced entity row does not exist.
// Callers must tolerate it at any point: content can be deleted out from
// under an in-flight moderation action.
var ErrNotFound = errors.New("entity not found")

// Snapshot is the minimal view of an entity the moderation flow needs.
type Snapshot struct {
	ID      uint64
	Status  string
	OwnerID uint64
}

// Detail is the normalized projection returned by the queue-detail endpoint.
// Exactly one of the four payload fields is set, matching Type. FloorNumber
// is populated for comment kinds only: the 1-based position among non-deleted
// siblings ordered by creation time.
type Detail struct {
	Type            Type                    `json:"entity_type"`
	ID              uint64                  `json:"entity_id"`
	Status          string                  `json:"status"`
	OwnerID         uint64                  `json:"owner_id"`
	FloorNumber     int                     `json:"floor_number,omitempty"`
	Resource        *models.Resource        `json:"resource,omitempty"`
	Review          *models.CourseReview    `json:"review,omitempty"`
	ResourceComment *models.ResourceComment `json:"resource_comment,omitempty"`
	ReviewComment   *models.ReviewComment   `json:"review_comment,omitempty"`
}

// Store is the capability interface implemented once per entity kind.
type Store interface {
	// Find returns the entity's snapshot, or ErrNotFound.
	Find(id uint64) (*Snapshot, error)
	// UpdateStatus moves the entity's visibility status.
	UpdateStatus(id uint64, status string) error
	// ProjectDetail assembles the denormalized admin view, or ErrNotFound.
	ProjectDetail(id uint64) (*Detail, error)
}

// Resolver maps an entity type to its store.
type Resolver interface {
	Store(t Type) (Store, bool)
}
