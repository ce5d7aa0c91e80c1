package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/service"
)

// FeedbackHandler handles feedback endpoints.
type FeedbackHandler struct {
	svc service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(svc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// CreateFeedbackRequest represents a feedback submission.
type CreateFeedbackRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// UpvoteRequest represents an upvote submission.
type UpvoteRequest struct {
	FeedbackID uint `json:"feedback_id" validate:"required"`
	Agreement  bool `json:"agreement"`
}

// MetadataResponse lists the distinct categories and statuses in use.
type MetadataResponse struct {
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses"`
}

// Create godoc
// @Summary Submit a feedback item
// @Tags feedback
// @Accept json
// @Security BearerAuth
// @Param request body CreateFeedbackRequest true "Feedback item"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	authorID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req CreateFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.svc.Create(c.Request().Context(), authorID, req.Title, req.Description, req.Category, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// List godoc
// @Summary Browse feedback items
// @Tags feedback
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param sortBy query string false "Sort column" Enums(created_at, title, category, status)
// @Param order query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {array} model.Feedback
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	opts := repository.ListOptions{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		SortBy:   c.QueryParam("sortBy"),
		Order:    c.QueryParam("order"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}

	items, err := h.svc.List(c.Request().Context(), opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Upvote godoc
// @Summary Upvote a feedback item
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpvoteRequest true "Upvote"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /feedback/upvote [post]
func (h *FeedbackHandler) Upvote(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req UpvoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.Upvote(c.Request().Context(), req.FeedbackID, userID, req.Agreement); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "upvote added"})
}

// Metadata godoc
// @Summary List distinct feedback categories and statuses
// @Tags feedback
// @Produce json
// @Success 200 {object} MetadataResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metadata [get]
func (h *FeedbackHandler) Metadata(c echo.Context) error {
	categories, statuses, err := h.svc.Metadata(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MetadataResponse{
		Categories: categories,
		Statuses:   statuses,
	})
}

// queryInt parses an integer query parameter, 0 when absent or malformed.
// Zero lets the list defaults apply.
func queryInt(c echo.Context, name string) int {
	v := c.QueryParam(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
