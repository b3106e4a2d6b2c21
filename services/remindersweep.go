package services

import (
	"context"

	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

// SweepOverdue materializes a missing overdue reminder for every incomplete
// task past its due date that has never been reminded. Creation is routed
// through GenerateForTask so the sweep and the task-write path share a single
// authority: a stale non-overdue leftover gets replaced, not duplicated.
func (e *ReminderEngine) SweepOverdue(ctx context.Context) ([]model.Reminder, error) {
	now := e.clock.Now()
	tasks, err := e.tasks.ListOverdueUnreminded(ctx, now)
	if err != nil {
		return nil, err
	}

	var created []model.Reminder
	for _, task := range tasks {
		exists, err := e.reminders.HasKind(ctx, task.TaskID, model.KindOverdue)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		generated, err := e.GenerateForTask(ctx, task.TaskID)
		if err != nil {
			return nil, err
		}
		if err := e.tasks.SetLastRemindedAt(ctx, task.TaskID, now); err != nil {
			return nil, err
		}
		created = append(created, generated...)
	}
	return created, nil
}
