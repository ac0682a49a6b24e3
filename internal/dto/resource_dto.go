package dto

type CreateResourceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	URL         string   `json:"url"`
	FileKey     string   `json:"file_key"`
	Visibility  string   `json:"visibility"`
	Tags        []string `json:"tags"`
	OfferingIDs []uint64 `json:"offering_ids"`
}

// UpdateResourceRequest uses pointers so absent fields are left untouched.
type UpdateResourceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	URL         *string  `json:"url"`
	Visibility  *string  `json:"visibility"`
	Tags        []string `json:"tags"`
}

type ResourceListFilter struct {
	Type       string
	UploaderID uint64
	OfferingID uint64
	Search     string
	Page       int
	Limit      int
}
