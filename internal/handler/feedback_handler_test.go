package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

// MockFeedbackService is a mock implementation of service.FeedbackService.
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Create(ctx context.Context, authorID uint, title, description, category, status string) error {
	args := m.Called(ctx, authorID, title, description, category, status)
	return args.Error(0)
}

func (m *MockFeedbackService) Upvote(ctx context.Context, feedbackID, userID uint, agreement bool) error {
	args := m.Called(ctx, feedbackID, userID, agreement)
	return args.Error(0)
}

func (m *MockFeedbackService) List(ctx context.Context, opts repository.ListOptions) ([]model.Feedback, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackService) Metadata(ctx context.Context) ([]string, []string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]string), args.Get(1).([]string), args.Error(2)
}

func TestListHandler_ParsesQuery(t *testing.T) {
	svc := new(MockFeedbackService)
	h := NewFeedbackHandler(svc)

	expected := repository.ListOptions{
		Category: "bug",
		Status:   "open",
		SortBy:   "title",
		Order:    "asc",
		Page:     2,
		Limit:    5,
	}
	svc.On("List", mock.Anything, expected).Return([]model.Feedback{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/feedback?category=bug&status=open&sortBy=title&order=asc&page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	err := h.List(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListHandler_EmptyQueryMeansZeroOptions(t *testing.T) {
	svc := new(MockFeedbackService)
	h := NewFeedbackHandler(svc)

	// Defaults are the service's job; the handler passes zero values through.
	svc.On("List", mock.Anything, repository.ListOptions{}).Return([]model.Feedback{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/feedback", nil)
	rec := httptest.NewRecorder()

	err := h.List(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListHandler_MalformedPageFallsBackToZero(t *testing.T) {
	svc := new(MockFeedbackService)
	h := NewFeedbackHandler(svc)

	svc.On("List", mock.Anything, repository.ListOptions{Page: 0, Limit: 5}).Return([]model.Feedback{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/feedback?page=two&limit=5", nil)
	rec := httptest.NewRecorder()

	err := h.List(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetadataHandler(t *testing.T) {
	svc := new(MockFeedbackService)
	h := NewFeedbackHandler(svc)

	svc.On("Metadata", mock.Anything).Return([]string{"bug", "ui"}, []string{"open"}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metadata", nil)
	rec := httptest.NewRecorder()

	err := h.Metadata(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"categories":["bug","ui"],"statuses":["open"]}`, rec.Body.String())
}
