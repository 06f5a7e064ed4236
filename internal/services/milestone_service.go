package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velora-hq/velora-api/internal/analytics"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMilestoneNotFound      = errors.New("milestone not found")
	ErrInvalidMilestoneStatus = errors.New("invalid milestone status")
)

// MilestoneService handles milestone business logic, including the
// progress derivation and the delete-time task detach.
type MilestoneService struct {
	milestoneRepo repository.MilestoneRepository
	taskRepo      repository.TaskRepository
}

// NewMilestoneService creates a new MilestoneService
func NewMilestoneService(milestoneRepo repository.MilestoneRepository, taskRepo repository.TaskRepository) *MilestoneService {
	return &MilestoneService{
		milestoneRepo: milestoneRepo,
		taskRepo:      taskRepo,
	}
}

// CreateMilestoneInput represents input for creating a milestone
type CreateMilestoneInput struct {
	WorkspaceID uint64
	Title       string
	Description string
	TargetDate  *time.Time
}

// CreateMilestone creates a new milestone in pending status
func (s *MilestoneService) CreateMilestone(input CreateMilestoneInput) (*models.Milestone, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	milestone := &models.Milestone{
		WorkspaceID: input.WorkspaceID,
		Title:       input.Title,
		Description: input.Description,
		Status:      models.MilestoneStatusPending,
		TargetDate:  input.TargetDate,
	}

	if err := s.milestoneRepo.Create(milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	return milestone, nil
}

// MilestoneWithProgress pairs a milestone with its derived progress.
type MilestoneWithProgress struct {
	models.Milestone
	analytics.MilestoneProgress
}

// ListMilestones returns a workspace's milestones with progress derived
// from their tasks.
func (s *MilestoneService) ListMilestones(workspaceID uint64) ([]MilestoneWithProgress, error) {
	milestones, err := s.milestoneRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	result := make([]MilestoneWithProgress, len(milestones))
	for i, m := range milestones {
		tasks, err := s.taskRepo.ListByMilestone(m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list milestone tasks: %w", err)
		}
		result[i] = MilestoneWithProgress{
			Milestone:         m,
			MilestoneProgress: analytics.ComputeMilestoneProgress(tasks),
		}
	}

	return result, nil
}

// UpdateMilestoneInput represents a partial patch to a milestone.
type UpdateMilestoneInput struct {
	Title       *string
	Description *string
	Status      *models.MilestoneStatus
	TargetDate  *time.Time
	ClearTarget bool
}

// UpdateMilestone applies a partial patch to a milestone
func (s *MilestoneService) UpdateMilestone(milestone *models.Milestone, input UpdateMilestoneInput) (*models.Milestone, error) {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		milestone.Title = *input.Title
	}
	if input.Description != nil {
		milestone.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidMilestoneStatus
		}
		milestone.Status = *input.Status
	}
	if input.ClearTarget {
		milestone.TargetDate = nil
	} else if input.TargetDate != nil {
		milestone.TargetDate = input.TargetDate
	}

	if err := s.milestoneRepo.Update(milestone); err != nil {
		return nil, fmt.Errorf("failed to update milestone: %w", err)
	}

	return milestone, nil
}

// DeleteMilestone removes a milestone and clears the weak reference on
// every task pointing at it. Tasks are never deleted by this cascade.
func (s *MilestoneService) DeleteMilestone(milestoneID uint64) error {
	if err := s.milestoneRepo.DeleteAndDetachTasks(milestoneID); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}

// FindMilestone returns a milestone by ID
func (s *MilestoneService) FindMilestone(milestoneID uint64) (*models.Milestone, error) {
	milestone, err := s.milestoneRepo.FindByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("failed to find milestone: %w", err)
	}
	return milestone, nil
}
