package response

import (
	"eventmate/internal/data/entity"
)

type ReviewResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id,omitempty"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating"`
	Date    string `json:"date"`
}

type ReviewCreatedResponse struct {
	ReviewID string `json:"review_id"`
}

func ReviewToResponse(review entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID,
		UserID:  review.UserID,
		Comment: review.Comment,
		Rating:  review.Rating,
		Date:    review.Date,
	}
}

func ReviewsToResponse(reviews []entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, ReviewToResponse(review))
	}
	return out
}
