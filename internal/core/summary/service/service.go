package summaryapp

import (
	"context"
	"fmt"

	summaryPort "blogcap/internal/ports/summary"
)

// SummaryService builds the admin report. It only reads.
type SummaryService struct {
	SummaryRepository summaryPort.SummaryRepository
}

func NewSummaryService(repo summaryPort.SummaryRepository) *SummaryService {
	return &SummaryService{SummaryRepository: repo}
}

// Summary returns totals plus the five most active commenters.
func (s *SummaryService) Summary(ctx context.Context) (*summaryPort.SummaryDTO, error) {
	users, err := s.SummaryRepository.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	posts, err := s.SummaryRepository.CountPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	comments, err := s.SummaryRepository.CountComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	top, err := s.SummaryRepository.TopCommenters(ctx, summaryPort.TopCommenterLimit)
	if err != nil {
		return nil, fmt.Errorf("top commenters: %w", err)
	}
	if top == nil {
		top = []*summaryPort.CommenterDTO{}
	}

	return &summaryPort.SummaryDTO{
		TotalUsers:    users,
		TotalPosts:    posts,
		TotalComments: comments,
		TopCommenters: top,
	}, nil
}
