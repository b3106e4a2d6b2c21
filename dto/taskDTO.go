package dto

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TemplateID  string `json:"templateid"`
	DueDate     string `json:"duedate"` // RFC3339; empty means no due date
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"duedate"` // RFC3339; "" clears the due date
	Completed   *bool   `json:"completed"`
}

type TaskResponse struct {
	TaskID         string `json:"taskid"`
	TemplateID     string `json:"templateid,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	DueDate        string `json:"duedate,omitempty"`
	Completed      bool   `json:"completed"`
	LastRemindedAt string `json:"lastremindedat,omitempty"`
	CreatedAt      string `json:"createdat"`
	UpdatedAt      string `json:"updatedat"`
}
