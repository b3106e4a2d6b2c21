package dto

import (
	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

// GroupedReminders holds at most one reminder per task, split by urgency
// relative to "now".
type GroupedReminders struct {
	Overdue  []model.Reminder `json:"overdue"`
	DueToday []model.Reminder `json:"due_today"`
	Upcoming []model.Reminder `json:"upcoming"`
}

// RecentReminder is a feed entry annotated for direct display.
type RecentReminder struct {
	model.Reminder
	DueDateLabel string `json:"duedateLabel"` // DD/MM/YYYY
	DaysLeft     int    `json:"daysLeft"`     // ceil of days until due; negative when past
}

type ReminderCounts struct {
	Total    int `json:"total"`
	Overdue  int `json:"overdue"`
	DueToday int `json:"dueToday"`
	Upcoming int `json:"upcoming"`
}

type DashboardRemindersResponse struct {
	Grouped GroupedReminders `json:"groupedReminders"`
	Recent  []RecentReminder `json:"recentReminders"`
	Counts  ReminderCounts   `json:"counts"`
}
