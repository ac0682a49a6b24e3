package dto

type CreateReviewRequest struct {
	CourseID   uint64 `json:"course_id"`
	OfferingID uint64 `json:"offering_id"`
	Rating     int    `json:"rating"`
	Content    string `json:"content"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type ReactionRequest struct {
	Reaction string `json:"reaction"`
}
