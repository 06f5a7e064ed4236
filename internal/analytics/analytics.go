// Package analytics computes the derived views over raw workspace
// records: milestone progress, the operational analytics summary, the
// financial summary and the investor-facing composite. Everything here is
// a pure function over record slices; callers load records and never see
// an error, since aggregation over empty input degrades to zeros.
package analytics

import (
	"math"

	"github.com/velora-hq/velora-api/internal/models"
)

// MilestoneProgress is the derived completion figure for one milestone.
type MilestoneProgress struct {
	Progress  int `json:"progress"`
	TaskCount int `json:"task_count"`
	TasksDone int `json:"tasks_done"`
}

// ComputeMilestoneProgress derives progress from the tasks referencing a
// milestone. Zero tasks means zero progress, not an error.
func ComputeMilestoneProgress(tasks []models.Task) MilestoneProgress {
	total := len(tasks)
	done := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			done++
		}
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(done) / float64(total) * 100))
	}

	return MilestoneProgress{
		Progress:  progress,
		TaskCount: total,
		TasksDone: done,
	}
}

// Summary is the workspace-wide operational analytics document.
type Summary struct {
	TotalTasks         int                            `json:"total_tasks"`
	CompletedTasks     int                            `json:"completed_tasks"`
	CompletionRate     int                            `json:"completion_rate"`
	TaskStats          map[models.TaskStatus]int      `json:"task_stats"`
	PriorityStats      map[models.TaskPriority]int    `json:"priority_stats"`
	TotalMilestones    int                            `json:"total_milestones"`
	MilestoneStats     map[models.MilestoneStatus]int `json:"milestone_stats"`
	TotalFeedback      int                            `json:"total_feedback"`
	FeedbackByCategory map[string]int                 `json:"feedback_by_category"`
	AvgRating          float64                        `json:"avg_rating"`
	TeamSize           int                            `json:"team_size"`
}

// ComputeSummary partitions tasks, milestones and feedback into the
// fixed-key histograms of the analytics document. Task and milestone
// histogram keys are always present even at zero; feedback categories are
// dynamic.
func ComputeSummary(tasks []models.Task, milestones []models.Milestone, feedback []models.Feedback, members []models.Membership) Summary {
	taskStats := map[models.TaskStatus]int{
		models.TaskStatusTodo:       0,
		models.TaskStatusInProgress: 0,
		models.TaskStatusReview:     0,
		models.TaskStatusDone:       0,
	}
	priorityStats := map[models.TaskPriority]int{
		models.TaskPriorityLow:    0,
		models.TaskPriorityMedium: 0,
		models.TaskPriorityHigh:   0,
		models.TaskPriorityUrgent: 0,
	}
	for _, t := range tasks {
		if _, ok := taskStats[t.Status]; ok {
			taskStats[t.Status]++
		}
		if _, ok := priorityStats[t.Priority]; ok {
			priorityStats[t.Priority]++
		}
	}

	milestoneStats := map[models.MilestoneStatus]int{
		models.MilestoneStatusPending:    0,
		models.MilestoneStatusInProgress: 0,
		models.MilestoneStatusCompleted:  0,
	}
	for _, m := range milestones {
		if _, ok := milestoneStats[m.Status]; ok {
			milestoneStats[m.Status]++
		}
	}

	feedbackByCategory := make(map[string]int)
	avgRating := 0.0
	if len(feedback) > 0 {
		ratingSum := 0
		for _, f := range feedback {
			feedbackByCategory[f.Category]++
			ratingSum += f.Rating
		}
		avgRating = round1(float64(ratingSum) / float64(len(feedback)))
	}

	totalTasks := len(tasks)
	completedTasks := taskStats[models.TaskStatusDone]
	completionRate := 0
	if totalTasks > 0 {
		completionRate = int(math.Round(float64(completedTasks) / float64(totalTasks) * 100))
	}

	return Summary{
		TotalTasks:         totalTasks,
		CompletedTasks:     completedTasks,
		CompletionRate:     completionRate,
		TaskStats:          taskStats,
		PriorityStats:      priorityStats,
		TotalMilestones:    len(milestones),
		MilestoneStats:     milestoneStats,
		TotalFeedback:      len(feedback),
		FeedbackByCategory: feedbackByCategory,
		AvgRating:          avgRating,
		TeamSize:           len(members),
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
