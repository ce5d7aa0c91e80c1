package repository

import (
	"context"

	"gorm.io/gorm"

	"feedbackhub/internal/model"
)

// UpvoteRepository defines upvote persistence operations.
type UpvoteRepository interface {
	Create(ctx context.Context, upvote *model.Upvote) error
}

type upvoteRepository struct {
	db *gorm.DB
}

// NewUpvoteRepository creates a new upvote repository.
func NewUpvoteRepository(db *gorm.DB) UpvoteRepository {
	return &upvoteRepository{db: db}
}

// Create appends an upvote row. Deliberately not an upsert: duplicates are
// allowed until the one-vote-per-user question is settled.
func (r *upvoteRepository) Create(ctx context.Context, upvote *model.Upvote) error {
	return r.db.WithContext(ctx).Create(upvote).Error
}
