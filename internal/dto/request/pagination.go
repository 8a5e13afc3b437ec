package request

import "eventmate/pkg/utils"

// PaginatedRequest carries page/limit/sort query parameters. Limit is clamped by the service.
type PaginatedRequest struct {
	Page  int    `json:"page" validate:"min=1"`
	Limit int    `json:"limit" validate:"min=1"`
	Sort  string `json:"sort"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit)
}
