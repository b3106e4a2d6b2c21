package model

import (
	"time"
)

// ReminderKind is the closed set of reminder categories. The string values
// are persisted as-is and returned to API callers.
type ReminderKind string

const (
	Kind30Days   ReminderKind = "30_days"
	Kind7Days    ReminderKind = "7_days"
	Kind1Day     ReminderKind = "1_day"
	KindDueToday ReminderKind = "due_today"
	KindOverdue  ReminderKind = "overdue"
)

// Reminder is one persisted notice for a task, snapshotting the task's due
// date at generation time.
type Reminder struct {
	ReminderID string       `firestore:"reminderid,omitempty" json:"reminderid"`
	TaskID     string       `firestore:"taskid,omitempty" json:"taskid"`
	UserID     string       `firestore:"userid,omitempty" json:"userid"`
	Kind       ReminderKind `firestore:"kind,omitempty" json:"kind"`
	Message    string       `firestore:"message,omitempty" json:"message"`
	DueDate    time.Time    `firestore:"duedate,omitempty" json:"duedate"`
	Sent       bool         `firestore:"sent" json:"sent"`
	SentAt     *time.Time   `firestore:"sentat,omitempty" json:"sentat,omitempty"`
	CreatedAt  time.Time    `firestore:"createdat,omitempty" json:"createdat"`
}
