package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/authz"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/services"
)

// FeedbackHandler coordinates feedback-related HTTP handlers.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// CreateFeedback records a feedback entry. Feedback is immutable; there
// is no update or delete route.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	member, _ := middleware.GetMembership(c)
	userID, _ := middleware.GetUserID(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot submit feedback")
		return
	}

	type CreateFeedbackRequest struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Rating   int    `json:"rating" binding:"required"`
		Source   string `json:"source"`
	}

	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	feedback, err := h.feedbackService.CreateFeedback(services.CreateFeedbackInput{
		WorkspaceID: workspace.ID,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Rating:      req.Rating,
		Source:      req.Source,
		SubmittedBy: userID,
	})
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListFeedback returns all feedback in the workspace.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	feedback, err := h.feedbackService.ListFeedback(workspace.ID)
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
	})
}

func respondFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidRating):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
