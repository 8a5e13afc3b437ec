package request

type CreateReviewRequest struct {
	Comment string `json:"comment" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	UserID  string `json:"user_id,omitempty"`
	Date    string `json:"date,omitempty"`
}

type UpdateReviewRequest struct {
	Comment *string `json:"comment,omitempty"`
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Date    *string `json:"date,omitempty"`
}
