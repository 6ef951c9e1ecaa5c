package op

import (
	"context"
	"fmt"

	"mergeverse/internal/domain/merge"
)

const (
	taskBalanceReward = 5
	taskIQReward      = 2
)

var badgeThresholds = []struct {
	count int
	badge merge.Badge
}{
	{10, merge.BadgeTenTasks},
	{20, merge.BadgeTwentyTasks},
	{30, merge.BadgeThirtyTasks},
}

// grantTaskReward is the shared reward step after any graded submission:
// currency and skill bump, annotation counter, badge thresholds crossed at
// most once each.
func grantTaskReward(s *merge.PlayerState) {
	s.Daily.Annotations.Current++
	s.Progress.TotalTasksCompleted++
	s.Progress.Balance += taskBalanceReward
	s.Progress.IQ += taskIQReward
	for _, t := range badgeThresholds {
		if s.Progress.TotalTasksCompleted >= t.count && !s.Progress.HasBadge(t.badge) {
			s.Progress.Badges = append(s.Progress.Badges, t.badge)
		}
	}
	s.RecalcProduct()
}

func findMcqTask(s *merge.PlayerState, taskID string) *merge.McqTask {
	for i := range s.Daily.McqTasks {
		if s.Daily.McqTasks[i].ID == taskID {
			return &s.Daily.McqTasks[i]
		}
	}
	return nil
}

func findTextTask(s *merge.PlayerState, taskID string, questionIndex int) *merge.TextTask {
	for i := range s.Daily.TextTasks {
		t := &s.Daily.TextTasks[i]
		if t.DatapointID == taskID && t.QuestionIndex == questionIndex {
			return t
		}
	}
	return nil
}

func validateSubmitMcq(s *merge.PlayerState, cmd Command) error {
	task := findMcqTask(s, cmd.TaskID)
	if task == nil {
		return ErrUnknownTask
	}
	if task.Visited {
		return ErrTaskCompleted
	}
	return nil
}

func applySubmitMcq(ctx context.Context, r *Resolver, oc *opContext) error {
	s := oc.State
	task := findMcqTask(s, oc.Cmd.TaskID)
	if err := r.Tasks.SubmitMcqAnswers(ctx, s.Profile.PlayerID, task.TaskID, oc.Cmd.Answers); err != nil {
		return fmt.Errorf("submit mcq %s: %w", task.TaskID, err)
	}
	task.Visited = true
	grantTaskReward(s)
	oc.Payload = taskResponse{
		TaskID:              task.ID,
		Annotations:         s.Daily.Annotations,
		TotalTasksCompleted: s.Progress.TotalTasksCompleted,
		Badges:              s.Progress.Badges,
	}
	return nil
}

func validateSubmitText(s *merge.PlayerState, cmd Command) error {
	task := findTextTask(s, cmd.TaskID, cmd.QuestionIndex)
	if task == nil {
		return ErrUnknownTask
	}
	if task.Visited {
		return ErrTaskCompleted
	}
	return nil
}

func applySubmitText(ctx context.Context, r *Resolver, oc *opContext) error {
	s := oc.State
	task := findTextTask(s, oc.Cmd.TaskID, oc.Cmd.QuestionIndex)
	if err := r.Tasks.SubmitTextAnswer(ctx, s.Profile.PlayerID, task.DatapointID, task.QuestionIndex, oc.Cmd.Text); err != nil {
		return fmt.Errorf("submit text %s: %w", task.DatapointID, err)
	}
	task.Visited = true
	grantTaskReward(s)
	oc.Payload = taskResponse{
		TaskID:              task.DatapointID,
		Annotations:         s.Daily.Annotations,
		TotalTasksCompleted: s.Progress.TotalTasksCompleted,
		Badges:              s.Progress.Badges,
	}
	return nil
}
