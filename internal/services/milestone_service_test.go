package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/velora-hq/velora-api/internal/models"
)

func TestMilestoneService_CreateMilestone(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	milestone, err := env.milestoneService.CreateMilestone(CreateMilestoneInput{
		WorkspaceID: workspace.ID,
		Title:       "public beta",
	})
	require.NoError(t, err)
	require.Equal(t, models.MilestoneStatusPending, milestone.Status)
}

func TestMilestoneService_ListMilestones_Progress(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	milestone, err := env.milestoneService.CreateMilestone(CreateMilestoneInput{
		WorkspaceID: workspace.ID,
		Title:       "public beta",
	})
	require.NoError(t, err)

	statuses := []models.TaskStatus{
		models.TaskStatusDone,
		models.TaskStatusDone,
		models.TaskStatusTodo,
	}
	for _, status := range statuses {
		_, err := env.taskService.CreateTask(CreateTaskInput{
			WorkspaceID: workspace.ID,
			Title:       "task",
			Status:      status,
			MilestoneID: &milestone.ID,
			CreatedBy:   founder.ID,
		})
		require.NoError(t, err)
	}

	listed, err := env.milestoneService.ListMilestones(workspace.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, 3, listed[0].TaskCount)
	require.Equal(t, 2, listed[0].TasksDone)
	require.Equal(t, 67, listed[0].Progress)
}

func TestMilestoneService_DeleteMilestone_DetachesTasks(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	milestone, err := env.milestoneService.CreateMilestone(CreateMilestoneInput{
		WorkspaceID: workspace.ID,
		Title:       "public beta",
	})
	require.NoError(t, err)

	var taskIDs []uint64
	for i := 0; i < 3; i++ {
		task, err := env.taskService.CreateTask(CreateTaskInput{
			WorkspaceID: workspace.ID,
			Title:       "task",
			MilestoneID: &milestone.ID,
			CreatedBy:   founder.ID,
		})
		require.NoError(t, err)
		taskIDs = append(taskIDs, task.ID)
	}

	require.NoError(t, env.milestoneService.DeleteMilestone(milestone.ID))

	_, err = env.milestoneService.FindMilestone(milestone.ID)
	require.ErrorIs(t, err, ErrMilestoneNotFound)

	// Tasks survive with the reference cleared.
	for _, id := range taskIDs {
		task, err := env.taskService.FindTask(id)
		require.NoError(t, err)
		require.Nil(t, task.MilestoneID)
	}
}

func TestMilestoneService_UpdateMilestone_InvalidStatus(t *testing.T) {
	env := setupServiceEnv(t)
	founder := env.createUser(t, "founder@example.com")
	workspace := env.createWorkspace(t, founder.ID, "Velora")

	milestone, err := env.milestoneService.CreateMilestone(CreateMilestoneInput{
		WorkspaceID: workspace.ID,
		Title:       "public beta",
	})
	require.NoError(t, err)

	bad := models.MilestoneStatus("shipped")
	_, err = env.milestoneService.UpdateMilestone(milestone, UpdateMilestoneInput{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidMilestoneStatus)
}
