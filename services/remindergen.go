package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

// ReminderRule maps a signed day offset from a task's due date to the kind
// and message of the reminder produced when that rule fires.
type ReminderRule struct {
	OffsetDays      int
	Kind            model.ReminderKind
	MessageTemplate string // %s is the task title
}

// ReminderRules is ordered from the largest offset to the smallest; the
// generator walks it top-down and the first applicable rule wins.
var ReminderRules = []ReminderRule{
	{OffsetDays: 30, Kind: model.Kind30Days, MessageTemplate: `Pengingat: "%s" jatuh tempo dalam 30 hari.`},
	{OffsetDays: 7, Kind: model.Kind7Days, MessageTemplate: `Pengingat: "%s" jatuh tempo dalam 7 hari.`},
	{OffsetDays: 1, Kind: model.Kind1Day, MessageTemplate: `Pengingat: "%s" jatuh tempo besok.`},
	{OffsetDays: 0, Kind: model.KindDueToday, MessageTemplate: `Pengingat: "%s" jatuh tempo hari ini.`},
	{OffsetDays: -1, Kind: model.KindOverdue, MessageTemplate: `Tugas "%s" telah melewati jatuh tempo.`},
}

// ReminderEngine owns reminder generation, the overdue sweep and the
// dashboard selection. All time arithmetic goes through the injected Clock.
type ReminderEngine struct {
	tasks     TaskStore
	reminders ReminderStore
	clock     Clock
}

func NewReminderEngine(tasks TaskStore, reminders ReminderStore, clock Clock) *ReminderEngine {
	return &ReminderEngine{tasks: tasks, reminders: reminders, clock: clock}
}

// GenerateForTask recomputes the single applicable reminder for a task and
// replaces whatever was stored before. Undated and completed tasks end up
// with no reminders; the replace still runs so nothing stale survives a
// cleared due date or a completion.
func (e *ReminderEngine) GenerateForTask(ctx context.Context, taskID string) ([]model.Reminder, error) {
	task, err := e.tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.DueDate == nil || task.Completed {
		if err := e.reminders.ReplaceForTask(ctx, taskID, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	now := e.clock.Now()
	due := *task.DueDate

	var generated []model.Reminder
	for i, rule := range ReminderRules {
		nextOffsetDays := 0
		if i+1 < len(ReminderRules) {
			nextOffsetDays = ReminderRules[i+1].OffsetDays
		}
		if !ruleApplies(rule, nextOffsetDays, due, now) {
			continue
		}
		generated = append(generated, model.Reminder{
			ReminderID: uuid.New().String(),
			TaskID:     task.TaskID,
			UserID:     task.UserID,
			Kind:       rule.Kind,
			Message:    buildMessage(rule, task.Title, due),
			DueDate:    due,
			Sent:       false,
			CreatedAt:  now,
		})
		break // first applicable rule wins
	}

	if err := e.reminders.ReplaceForTask(ctx, taskID, generated); err != nil {
		return nil, err
	}
	return generated, nil
}

// GenerateForTaskAsync runs GenerateForTask detached from the request that
// triggered it. Failures are logged, never returned: a task write must not
// fail because its reminder could not be generated.
func (e *ReminderEngine) GenerateForTaskAsync(taskID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := e.GenerateForTask(ctx, taskID); err != nil {
			log.Printf("[reminder] generation failed for task %s: %v", taskID, err)
		}
	}()
}

// MarkReminderRead flips a reminder to sent. A reminder belonging to another
// user is reported as not found. Marking twice is a no-op.
func (e *ReminderEngine) MarkReminderRead(ctx context.Context, userID, reminderID string) error {
	reminder, err := e.reminders.GetReminder(ctx, reminderID)
	if err != nil {
		return err
	}
	if reminder.UserID != userID {
		return ErrReminderNotFound
	}
	if reminder.Sent {
		return nil
	}
	return e.reminders.MarkSent(ctx, reminderID, e.clock.Now())
}

// DeleteTaskWithReminders clears a task's reminders (one transactional
// replace) before removing the task itself. An interrupted delete can leave
// the task behind for a retry, but never stranded unsent reminders.
func (e *ReminderEngine) DeleteTaskWithReminders(ctx context.Context, taskID string) error {
	if err := e.reminders.ReplaceForTask(ctx, taskID, nil); err != nil {
		return err
	}
	return e.tasks.DeleteTask(ctx, taskID)
}

// ruleApplies reports whether the task currently sits inside a rule's
// window. A positive-offset rule owns the calendar-day span down to the next
// rule's offset, and the largest offset doubles as the far catch-all, so
// exactly one rule matches any dated task: due in five days falls in the
// 7-day window, never the 1-day one.
func ruleApplies(rule ReminderRule, nextOffsetDays int, due, now time.Time) bool {
	switch {
	case rule.OffsetDays > 0:
		return daysUntilDue(due, now) > nextOffsetDays
	case rule.OffsetDays == 0:
		return !due.Before(now)
	default:
		return due.Before(now)
	}
}

// daysUntilDue is the calendar-day distance from now's day to the due day.
func daysUntilDue(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(dueDay.Sub(today).Hours() / 24)
}

func buildMessage(rule ReminderRule, title string, due time.Time) string {
	message := fmt.Sprintf(rule.MessageTemplate, title)
	if rule.OffsetDays < 0 {
		message += " Jatuh tempo pada " + due.Format("02/01/2006")
	}
	return message
}
