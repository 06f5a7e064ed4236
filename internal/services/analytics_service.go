package services

import (
	"fmt"

	"github.com/velora-hq/velora-api/internal/analytics"
	"github.com/velora-hq/velora-api/internal/repository"
)

// AnalyticsService derives workspace metrics on demand. Nothing here is
// persisted; every summary is recomputed from the current records.
type AnalyticsService struct {
	taskRepo      repository.TaskRepository
	milestoneRepo repository.MilestoneRepository
	feedbackRepo  repository.FeedbackRepository
	workspaceRepo repository.WorkspaceRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	taskRepo repository.TaskRepository,
	milestoneRepo repository.MilestoneRepository,
	feedbackRepo repository.FeedbackRepository,
	workspaceRepo repository.WorkspaceRepository,
) *AnalyticsService {
	return &AnalyticsService{
		taskRepo:      taskRepo,
		milestoneRepo: milestoneRepo,
		feedbackRepo:  feedbackRepo,
		workspaceRepo: workspaceRepo,
	}
}

// WorkspaceSummary computes the cross-record summary for a workspace
func (s *AnalyticsService) WorkspaceSummary(workspaceID uint64) (*analytics.Summary, error) {
	tasks, err := s.taskRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	milestones, err := s.milestoneRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	feedback, err := s.feedbackRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	members, err := s.workspaceRepo.ListMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	summary := analytics.ComputeSummary(tasks, milestones, feedback, members)
	return &summary, nil
}
