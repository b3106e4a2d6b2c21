package services

import (
	"context"
	"sort"
	"time"

	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

// fixedClock lets tests pin and advance "now".
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type memTaskStore struct {
	tasks map[string]model.Tasks
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[string]model.Tasks)}
}

func (s *memTaskStore) GetTask(_ context.Context, taskID string) (*model.Tasks, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

func (s *memTaskStore) ListOverdueUnreminded(_ context.Context, now time.Time) ([]model.Tasks, error) {
	var tasks []model.Tasks
	for _, task := range s.tasks {
		if task.Completed || task.DueDate == nil || !task.DueDate.Before(now) {
			continue
		}
		if task.LastRemindedAt != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].TaskID < tasks[j].TaskID })
	return tasks, nil
}

func (s *memTaskStore) DeleteTask(_ context.Context, taskID string) error {
	if _, ok := s.tasks[taskID]; !ok {
		return ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *memTaskStore) SetLastRemindedAt(_ context.Context, taskID string, at time.Time) error {
	task, ok := s.tasks[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	task.LastRemindedAt = &at
	s.tasks[taskID] = task
	return nil
}

func (s *memTaskStore) put(task model.Tasks) {
	s.tasks[task.TaskID] = task
}

type memReminderStore struct {
	reminders map[string]model.Reminder
}

func newMemReminderStore() *memReminderStore {
	return &memReminderStore{reminders: make(map[string]model.Reminder)}
}

func (s *memReminderStore) GetReminder(_ context.Context, reminderID string) (*model.Reminder, error) {
	reminder, ok := s.reminders[reminderID]
	if !ok {
		return nil, ErrReminderNotFound
	}
	return &reminder, nil
}

func (s *memReminderStore) ListUnsentByUser(_ context.Context, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	for _, reminder := range s.reminders {
		if reminder.UserID != userID || reminder.Sent {
			continue
		}
		reminders = append(reminders, reminder)
	}
	sort.Slice(reminders, func(i, j int) bool {
		if !reminders[i].DueDate.Equal(reminders[j].DueDate) {
			return reminders[i].DueDate.Before(reminders[j].DueDate)
		}
		return reminders[i].CreatedAt.Before(reminders[j].CreatedAt)
	})
	return reminders, nil
}

func (s *memReminderStore) HasKind(_ context.Context, taskID string, kind model.ReminderKind) (bool, error) {
	for _, reminder := range s.reminders {
		if reminder.TaskID == taskID && reminder.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (s *memReminderStore) ReplaceForTask(_ context.Context, taskID string, reminders []model.Reminder) error {
	for id, reminder := range s.reminders {
		if reminder.TaskID == taskID {
			delete(s.reminders, id)
		}
	}
	for _, reminder := range reminders {
		s.reminders[reminder.ReminderID] = reminder
	}
	return nil
}

func (s *memReminderStore) MarkSent(_ context.Context, reminderID string, at time.Time) error {
	reminder, ok := s.reminders[reminderID]
	if !ok {
		return ErrReminderNotFound
	}
	reminder.Sent = true
	reminder.SentAt = &at
	s.reminders[reminderID] = reminder
	return nil
}

func (s *memReminderStore) put(reminder model.Reminder) {
	s.reminders[reminder.ReminderID] = reminder
}

func (s *memReminderStore) byTask(taskID string) []model.Reminder {
	var reminders []model.Reminder
	for _, reminder := range s.reminders {
		if reminder.TaskID == taskID {
			reminders = append(reminders, reminder)
		}
	}
	return reminders
}

func newTestEngine(now time.Time) (*ReminderEngine, *memTaskStore, *memReminderStore, *fixedClock) {
	tasks := newMemTaskStore()
	reminders := newMemReminderStore()
	clock := &fixedClock{now: now}
	return NewReminderEngine(tasks, reminders, clock), tasks, reminders, clock
}
