package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// FeedbackService handles feedback entries. Feedback is immutable after
// creation.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
	}
}

// CreateFeedbackInput represents input for creating a feedback entry
type CreateFeedbackInput struct {
	WorkspaceID uint64
	Title       string
	Content     string
	Category    string
	Rating      int
	Source      string
	SubmittedBy uint64
}

// CreateFeedback records a feedback entry. Categories are an open set;
// unknown categories still aggregate.
func (s *FeedbackService) CreateFeedback(input CreateFeedbackInput) (*models.Feedback, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	category := input.Category
	if category == "" {
		category = "product"
	}
	source := input.Source
	if source == "" {
		source = "internal"
	}

	feedback := &models.Feedback{
		WorkspaceID: input.WorkspaceID,
		Title:       input.Title,
		Content:     input.Content,
		Category:    category,
		Rating:      input.Rating,
		Source:      source,
		SubmittedBy: input.SubmittedBy,
	}

	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return feedback, nil
}

// ListFeedback returns all feedback in a workspace
func (s *FeedbackService) ListFeedback(workspaceID uint64) ([]models.Feedback, error) {
	feedback, err := s.feedbackRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
