package approve_review

// ApproveReviewRequest HTTP request model
type ApproveReviewRequest struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}
