package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

// Urgency buckets relative to "now". Lower wins on per-task deduplication.
const (
	bucketOverdue = iota
	bucketDueToday
	bucketUpcoming
)

const recentFeedSize = 5

// NearestReminders reduces a user's unsent reminders to one per task (the
// most urgent), partitions them into overdue/due-today/upcoming and builds
// the top-N recent feed.
func (e *ReminderEngine) NearestReminders(ctx context.Context, userID string) (*dto.DashboardRemindersResponse, error) {
	reminders, err := e.reminders.ListUnsentByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfToday.AddDate(0, 0, 1)

	bucketOf := func(due time.Time) int {
		switch {
		case due.Before(startOfToday):
			return bucketOverdue
		case due.Before(endOfToday):
			return bucketDueToday
		default:
			return bucketUpcoming
		}
	}

	// One reminder per task: the smallest bucket wins, then the earliest
	// due date. An overdue notice always beats a stale upcoming leftover.
	nearest := make(map[string]model.Reminder)
	for _, reminder := range reminders {
		current, ok := nearest[reminder.TaskID]
		if !ok {
			nearest[reminder.TaskID] = reminder
			continue
		}
		currentBucket, candidateBucket := bucketOf(current.DueDate), bucketOf(reminder.DueDate)
		if candidateBucket < currentBucket ||
			(candidateBucket == currentBucket && reminder.DueDate.Before(current.DueDate)) {
			nearest[reminder.TaskID] = reminder
		}
	}

	deduped := make([]model.Reminder, 0, len(nearest))
	for _, reminder := range nearest {
		deduped = append(deduped, reminder)
	}
	sort.Slice(deduped, func(i, j int) bool {
		bi, bj := bucketOf(deduped[i].DueDate), bucketOf(deduped[j].DueDate)
		if bi != bj {
			return bi < bj
		}
		if !deduped[i].DueDate.Equal(deduped[j].DueDate) {
			return deduped[i].DueDate.Before(deduped[j].DueDate)
		}
		return deduped[i].CreatedAt.Before(deduped[j].CreatedAt)
	})

	response := &dto.DashboardRemindersResponse{
		Grouped: dto.GroupedReminders{
			Overdue:  []model.Reminder{},
			DueToday: []model.Reminder{},
			Upcoming: []model.Reminder{},
		},
		Recent: []dto.RecentReminder{},
	}

	for _, reminder := range deduped {
		// The upcoming test alone would also match today's window; the
		// branch order keeps the buckets mutually exclusive.
		if reminder.DueDate.Before(startOfToday) {
			response.Grouped.Overdue = append(response.Grouped.Overdue, reminder)
		} else if reminder.DueDate.Before(endOfToday) {
			response.Grouped.DueToday = append(response.Grouped.DueToday, reminder)
		} else {
			response.Grouped.Upcoming = append(response.Grouped.Upcoming, reminder)
		}
	}

	for i, reminder := range deduped {
		if i == recentFeedSize {
			break
		}
		response.Recent = append(response.Recent, dto.RecentReminder{
			Reminder:     reminder,
			DueDateLabel: reminder.DueDate.Format("02/01/2006"),
			DaysLeft:     daysLeft(reminder.DueDate, now),
		})
	}

	response.Counts = dto.ReminderCounts{
		Total:    len(deduped),
		Overdue:  len(response.Grouped.Overdue),
		DueToday: len(response.Grouped.DueToday),
		Upcoming: len(response.Grouped.Upcoming),
	}
	return response, nil
}

// ListUnsent returns the raw non-deduplicated reminder list, ordered by due
// date then creation time. Kept for callers of the legacy reminder view.
func (e *ReminderEngine) ListUnsent(ctx context.Context, userID string) ([]model.Reminder, error) {
	return e.reminders.ListUnsentByUser(ctx, userID)
}

// GroupTasksByDue partitions dated tasks with the same day windows the
// reminder buckets use, against the engine clock, so the legacy view's
// boundaries cannot drift from the sweep's. Undated tasks are skipped.
func (e *ReminderEngine) GroupTasksByDue(tasks []model.Tasks) (overdue, dueToday, upcoming []model.Tasks) {
	now := e.clock.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfToday.AddDate(0, 0, 1)

	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(startOfToday) {
			overdue = append(overdue, task)
		} else if task.DueDate.Before(endOfToday) {
			dueToday = append(dueToday, task)
		} else {
			upcoming = append(upcoming, task)
		}
	}
	return overdue, dueToday, upcoming
}

func daysLeft(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
