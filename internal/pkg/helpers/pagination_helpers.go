package helpers

import (
	"github.com/campusdesk/academics/internal/app/models/dto"
	"github.com/campusdesk/academics/internal/pkg/querybuilder"
)

// NewPaginationInfo converts a resolved query window into the response DTO.
func NewPaginationInfo(p querybuilder.Pagination) *dto.PaginationInfo {
	totalPages := p.TotalPages
	if totalPages == 0 && p.Page == 1 {
		// an empty first page still counts as one page
		totalPages = 1
	}

	return &dto.PaginationInfo{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		PageSize:    p.Limit,
		TotalItems:  p.Total,
	}
}
