package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velora-hq/velora-api/internal/authz"
	"github.com/velora-hq/velora-api/internal/dto"
	apierrors "github.com/velora-hq/velora-api/internal/errors"
	"github.com/velora-hq/velora-api/internal/middleware"
	"github.com/velora-hq/velora-api/internal/models"
	"github.com/velora-hq/velora-api/internal/repository"
	"github.com/velora-hq/velora-api/internal/services"
	"github.com/velora-hq/velora-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task in the workspace.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)
	member, _ := middleware.GetMembership(c)
	userID, _ := middleware.GetUserID(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot create tasks")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		AssignedTo  *uint64             `json:"assigned_to"`
		MilestoneID *uint64             `json:"milestone_id"`
		DueDate     *time.Time          `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		WorkspaceID: workspace.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		MilestoneID: req.MilestoneID,
		DueDate:     req.DueDate,
		CreatedBy:   userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns a page of the workspace's tasks. Status, priority,
// assignee, and milestone filters come from query parameters.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	workspace, _ := middleware.GetWorkspace(c)

	params := utils.GetPaginationParams(c)
	filter := repository.TaskFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.TaskPriority(priority)
		filter.Priority = &p
	}
	if assignedTo := c.Query("assigned_to"); assignedTo != "" {
		id, err := strconv.ParseUint(assignedTo, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assigned_to parameter")
			return
		}
		filter.AssignedTo = &id
	}
	if milestoneID := c.Query("milestone_id"); milestoneID != "" {
		id, err := strconv.ParseUint(milestoneID, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid milestone_id parameter")
			return
		}
		filter.MilestoneID = &id
	}

	tasks, total, err := h.taskService.ListTasks(workspace.ID, filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, _ := middleware.GetTask(c)
	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, _ := middleware.GetTask(c)
	member, _ := middleware.GetMembership(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot update tasks")
		return
	}

	type UpdateTaskRequest struct {
		Title          *string              `json:"title"`
		Description    *string              `json:"description"`
		Status         *models.TaskStatus   `json:"status"`
		Priority       *models.TaskPriority `json:"priority"`
		AssignedTo     *uint64              `json:"assigned_to"`
		MilestoneID    *uint64              `json:"milestone_id"`
		DueDate        *time.Time           `json:"due_date"`
		ClearAssignee  bool                 `json:"clear_assignee"`
		ClearMilestone bool                 `json:"clear_milestone"`
		ClearDueDate   bool                 `json:"clear_due_date"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(&task, services.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		AssignedTo:     req.AssignedTo,
		MilestoneID:    req.MilestoneID,
		DueDate:        req.DueDate,
		ClearAssignee:  req.ClearAssignee,
		ClearMilestone: req.ClearMilestone,
		ClearDueDate:   req.ClearDueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// UpdateTaskStatus is the status-only update path. Members may move
// their own tasks; founders and managers may move any.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	task, _ := middleware.GetTask(c)
	member, _ := middleware.GetMembership(c)

	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTaskStatus(&member, &task, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, _ := middleware.GetTask(c)
	member, _ := middleware.GetMembership(c)

	if err := authz.Authorize(&member, authz.ActionWriteRecord); err != nil {
		apierrors.Forbidden(c, "Investors cannot delete tasks")
		return
	}

	if err := h.taskService.DeleteTask(task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrAssigneeNotMember),
		errors.Is(err, services.ErrMilestoneMismatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, authz.ErrDenied):
		apierrors.Forbidden(c, "You can only update the status of tasks assigned to you")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
