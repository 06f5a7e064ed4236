package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/velora-hq/velora-api/internal/authz"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleEmpty          = errors.New("title cannot be empty")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrAssigneeNotMember   = errors.New("assignee is not a member of the workspace")
	ErrMilestoneMismatch   = errors.New("milestone does not belong to the workspace")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo      repository.TaskRepository
	milestoneRepo repository.MilestoneRepository
	workspaceRepo repository.WorkspaceRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, milestoneRepo repository.MilestoneRepository, workspaceRepo repository.WorkspaceRepository) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		milestoneRepo: milestoneRepo,
		workspaceRepo: workspaceRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	WorkspaceID uint64
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uint64
	MilestoneID *uint64
	DueDate     *time.Time
	CreatedBy   uint64
}

// CreateTask creates a new task with validation
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	if input.AssignedTo != nil {
		if err := s.ensureWorkspaceMember(input.WorkspaceID, *input.AssignedTo); err != nil {
			return nil, err
		}
	}
	if input.MilestoneID != nil {
		if err := s.ensureMilestoneInWorkspace(input.WorkspaceID, *input.MilestoneID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		WorkspaceID: input.WorkspaceID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		MilestoneID: input.MilestoneID,
		DueDate:     input.DueDate,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasks returns a page of a workspace's tasks and the total count
// matching the filter.
func (s *TaskService) ListTasks(workspaceID uint64, filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(workspaceID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// UpdateTaskInput represents a partial patch to a task. Absent fields are
// untouched, not reset.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	AssignedTo     *uint64
	MilestoneID    *uint64
	DueDate        *time.Time
	ClearMilestone bool
	ClearAssignee  bool
	ClearDueDate   bool
}

// UpdateTask applies a partial patch to a task
func (s *TaskService) UpdateTask(task *models.Task, input UpdateTaskInput) (*models.Task, error) {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
	} else if input.AssignedTo != nil {
		if err := s.ensureWorkspaceMember(task.WorkspaceID, *input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.ClearMilestone {
		task.MilestoneID = nil
	} else if input.MilestoneID != nil {
		if err := s.ensureMilestoneInWorkspace(task.WorkspaceID, *input.MilestoneID); err != nil {
			return nil, err
		}
		task.MilestoneID = input.MilestoneID
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// UpdateTaskStatus is the status-only update path: founders and managers
// may always use it, members only for tasks assigned to them.
func (s *TaskService) UpdateTaskStatus(member *models.Membership, task *models.Task, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	if err := authz.CanUpdateTaskStatus(member, task); err != nil {
		return nil, err
	}

	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// FindTask returns a task by ID
func (s *TaskService) FindTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureWorkspaceMember(workspaceID, userID uint64) error {
	if _, err := s.workspaceRepo.FindMember(workspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotMember
		}
		return fmt.Errorf("failed to verify assignee membership: %w", err)
	}
	return nil
}

func (s *TaskService) ensureMilestoneInWorkspace(workspaceID, milestoneID uint64) error {
	milestone, err := s.milestoneRepo.FindByID(milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMilestoneMismatch
		}
		return fmt.Errorf("failed to find milestone: %w", err)
	}
	if milestone.WorkspaceID != workspaceID {
		return ErrMilestoneMismatch
	}
	return nil
}
