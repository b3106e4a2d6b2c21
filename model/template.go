package model

import "time"

type Template struct {
	TemplateID  string         `firestore:"templateid,omitempty"`
	UserID      string         `firestore:"userid,omitempty"`
	Name        string         `firestore:"name,omitempty"`
	Description string         `firestore:"description,omitempty"`
	Category    string         `firestore:"category,omitempty"` // e.g. "documents", "bills", "vehicle"
	Items       []TemplateItem `firestore:"items,omitempty"`
	CreatedAt   time.Time      `firestore:"createdat,omitempty"`
	UpdatedAt   time.Time      `firestore:"updatedat,omitempty"`
}

type TemplateItem struct {
	Title       string `firestore:"title,omitempty"`
	Description string `firestore:"description,omitempty"`
	DueInDays   int    `firestore:"dueindays,omitempty"` // days from apply time to the task due date
}
