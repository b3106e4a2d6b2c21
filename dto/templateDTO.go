package dto

type TemplateItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueInDays   int    `json:"dueindays"`
}

type CreateTemplateRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Items       []TemplateItemRequest `json:"items" binding:"required,min=1"`
}

type UpdateTemplateRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Items       []TemplateItemRequest `json:"items"`
}
