package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// List defaults applied when the caller leaves options unset.
const (
	DefaultSortBy = "created_at"
	DefaultOrder  = "desc"
	DefaultPage   = 1
	DefaultLimit  = 10
)

// sortColumns is the allow-list of columns the caller may sort by. Sort
// identifiers cannot be bound as query parameters, so anything destined for
// the ORDER BY clause must pass this list first.
var sortColumns = map[string]bool{
	"created_at": true,
	"title":      true,
	"category":   true,
	"status":     true,
}

// ListOptions captures the filter, sort, and pagination parameters of a
// feedback list query.
type ListOptions struct {
	Category string
	Status   string
	SortBy   string
	Order    string
	Page     int
	Limit    int
}

// WithDefaults returns a copy with unset fields replaced by list defaults.
func (o ListOptions) WithDefaults() ListOptions {
	if o.SortBy == "" {
		o.SortBy = DefaultSortBy
	}
	if o.Order == "" {
		o.Order = DefaultOrder
	}
	if o.Page < 1 {
		o.Page = DefaultPage
	}
	if o.Limit < 1 {
		o.Limit = DefaultLimit
	}
	return o
}

// Validate checks caller-controlled identifiers against the allow-lists.
func (o ListOptions) Validate() error {
	if !sortColumns[o.SortBy] {
		return fmt.Errorf("%w: sortBy %q", apperrors.ErrInvalidSort, o.SortBy)
	}
	switch strings.ToLower(o.Order) {
	case "asc", "desc":
	default:
		return fmt.Errorf("%w: order %q", apperrors.ErrInvalidSort, o.Order)
	}
	return nil
}

// orderClause renders the validated sort as an ORDER BY expression.
func (o ListOptions) orderClause() string {
	return o.SortBy + " " + strings.ToLower(o.Order)
}

// offset computes the offset-based paging position.
func (o ListOptions) offset() int {
	return (o.Page - 1) * o.Limit
}

// FeedbackRepository defines feedback persistence operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
	FindByID(ctx context.Context, id uint) (*model.Feedback, error)
	List(ctx context.Context, opts ListOptions) ([]model.Feedback, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctStatuses(ctx context.Context) ([]string, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// List runs the filtered, sorted, paginated query. Filters bind as
// parameters; the ORDER BY identifiers come from opts after validation.
func (r *feedbackRepository) List(ctx context.Context, opts ListOptions) ([]model.Feedback, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&model.Feedback{})
	if opts.Category != "" {
		q = q.Where("category = ?", opts.Category)
	}
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}

	var items []model.Feedback
	err := q.Order(opts.orderClause()).
		Limit(opts.Limit).
		Offset(opts.offset()).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *feedbackRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Distinct("category").Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *feedbackRepository) DistinctStatuses(ctx context.Context) ([]string, error) {
	var statuses []string
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Distinct("status").Pluck("status", &statuses).Error
	if err != nil {
		return nil, err
	}
	return statuses, nil
}
