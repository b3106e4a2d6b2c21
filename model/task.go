package model

import (
	"time"
)

type Tasks struct {
	TaskID         string     `firestore:"taskid,omitempty"`
	UserID         string     `firestore:"userid,omitempty"`
	TemplateID     string     `firestore:"templateid,omitempty"`
	Title          string     `firestore:"title,omitempty"`
	Description    string     `firestore:"description,omitempty"`
	DueDate        *time.Time `firestore:"duedate,omitempty"`
	Completed      bool       `firestore:"completed"`
	LastRemindedAt *time.Time `firestore:"lastremindedat,omitempty"`
	CreatedAt      time.Time  `firestore:"createdat,omitempty"`
	UpdatedAt      time.Time  `firestore:"updatedat,omitempty"`
}
