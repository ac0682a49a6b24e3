package dto

type CreateReportRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   uint64 `json:"entity_id"`
	Reason     string `json:"reason"`
	Details    string `json:"details"`
}

type SetReportStatusRequest struct {
	Status string `json:"status"`
}

type CreateQueueItemRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   uint64 `json:"entity_id"`
	Notes      string `json:"notes"`
}

// HandleQueueItemRequest carries an admin decision; status is the decided
// queue status. Action is only honored for approved resources, where "hide"
// keeps the content out of listings.
type HandleQueueItemRequest struct {
	Status string `json:"status"`
	Action string `json:"action,omitempty"`
	Notes  string `json:"notes,omitempty"`
}
