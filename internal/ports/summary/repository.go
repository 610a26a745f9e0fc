package summary

import "context"

// TopCommenterLimit is how many users the report lists.
const TopCommenterLimit = 5

// SummaryRepository is the read-only port behind the admin report.
type SummaryRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountPosts(ctx context.Context) (int64, error)
	CountComments(ctx context.Context) (int64, error)
	// TopCommenters excludes users without comments.
	TopCommenters(ctx context.Context, limit int) ([]*CommenterDTO, error)
}

type CommenterDTO struct {
	FullName     string `json:"full_name"`
	CommentCount int64  `json:"comment_count"`
}

type SummaryDTO struct {
	TotalUsers    int64           `json:"total_users"`
	TotalPosts    int64           `json:"total_posts"`
	TotalComments int64           `json:"total_comments"`
	TopCommenters []*CommenterDTO `json:"top_commenters"`
}
