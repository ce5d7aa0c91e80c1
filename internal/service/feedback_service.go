package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

// FeedbackService exposes feedback submission, voting, and browsing.
type FeedbackService interface {
	Create(ctx context.Context, authorID uint, title, description, category, status string) error
	Upvote(ctx context.Context, feedbackID, userID uint, agreement bool) error
	List(ctx context.Context, opts repository.ListOptions) ([]model.Feedback, error)
	Metadata(ctx context.Context) (categories, statuses []string, err error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	upvoteRepo   repository.UpvoteRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, upvoteRepo repository.UpvoteRepository) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		upvoteRepo:   upvoteRepo,
	}
}

// Create persists a new feedback item. created_at is assigned by the store.
func (s *feedbackService) Create(ctx context.Context, authorID uint, title, description, category, status string) error {
	feedback := &model.Feedback{
		Title:       title,
		Description: description,
		Category:    category,
		Status:      status,
		AuthorID:    authorID,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// Upvote appends a vote row. No idempotence: voting twice records two votes.
func (s *feedbackService) Upvote(ctx context.Context, feedbackID, userID uint, agreement bool) error {
	if _, err := s.feedbackRepo.FindByID(ctx, feedbackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFeedbackNotFound
		}
		return fmt.Errorf("find feedback: %w", err)
	}

	upvote := &model.Upvote{
		FeedbackID: feedbackID,
		UserID:     userID,
		Agreement:  agreement,
	}
	if err := s.upvoteRepo.Create(ctx, upvote); err != nil {
		return fmt.Errorf("create upvote: %w", err)
	}
	return nil
}

// List applies defaults, validates the sort allow-list, and runs the query.
func (s *feedbackService) List(ctx context.Context, opts repository.ListOptions) ([]model.Feedback, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return s.feedbackRepo.List(ctx, opts)
}

// Metadata enumerates the distinct categories and statuses in use.
func (s *feedbackService) Metadata(ctx context.Context) ([]string, []string, error) {
	categories, err := s.feedbackRepo.DistinctCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("distinct categories: %w", err)
	}
	statuses, err := s.feedbackRepo.DistinctStatuses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("distinct statuses: %w", err)
	}
	return categories, statuses, nil
}
