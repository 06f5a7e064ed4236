package dto

import (
	"time"

	"github.com/velora-hq/velora-api/internal/analytics"
	"github.com/velora-hq/velora-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	WorkspaceID uint64              `json:"workspace_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	AssignedTo  *uint64             `json:"assigned_to"`
	MilestoneID *uint64             `json:"milestone_id"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedBy   uint64              `json:"created_by"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Creator     *UserDTO            `json:"creator,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		WorkspaceID: task.WorkspaceID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssignedTo:  task.AssignedTo,
		MilestoneID: task.MilestoneID,
		DueDate:     task.DueDate,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include creator if preloaded
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// MilestoneDTO represents a milestone with its derived progress
type MilestoneDTO struct {
	ID          uint64                 `json:"id"`
	WorkspaceID uint64                 `json:"workspace_id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      models.MilestoneStatus `json:"status"`
	TargetDate  *time.Time             `json:"target_date"`
	Progress    int                    `json:"progress"`
	TaskCount   int                    `json:"task_count"`
	TasksDone   int                    `json:"tasks_done"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ToMilestoneDTO converts a milestone and its progress to MilestoneDTO
func ToMilestoneDTO(milestone models.Milestone, progress analytics.MilestoneProgress) MilestoneDTO {
	return MilestoneDTO{
		ID:          milestone.ID,
		WorkspaceID: milestone.WorkspaceID,
		Title:       milestone.Title,
		Description: milestone.Description,
		Status:      milestone.Status,
		TargetDate:  milestone.TargetDate,
		Progress:    progress.Progress,
		TaskCount:   progress.TaskCount,
		TasksDone:   progress.TasksDone,
		CreatedAt:   milestone.CreatedAt,
		UpdatedAt:   milestone.UpdatedAt,
	}
}
