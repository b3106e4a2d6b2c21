package task

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/middleware"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func TaskController(router *gin.Engine, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	routes := router.Group("/task", middleware.AccessTokenMiddleware())
	{
		routes.POST("", func(c *gin.Context) {
			Createtask(c, firestoreClient, engine)
		})
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, firestoreClient)
		})
		routes.GET("/:taskid", func(c *gin.Context) {
			GetTask(c, firestoreClient)
		})
		routes.PUT("/:taskid", func(c *gin.Context) {
			UpdateTask(c, firestoreClient, engine)
		})
		routes.PUT("/:taskid/complete", func(c *gin.Context) {
			CompleteTask(c, firestoreClient, engine)
		})
		routes.DELETE("/:taskid", func(c *gin.Context) {
			DeleteTask(c, firestoreClient, engine)
		})
	}
}

func toTaskResponse(task model.Tasks) dto.TaskResponse {
	response := dto.TaskResponse{
		TaskID:      task.TaskID,
		TemplateID:  task.TemplateID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		response.DueDate = task.DueDate.Format(time.RFC3339)
	}
	if task.LastRemindedAt != nil {
		response.LastRemindedAt = task.LastRemindedAt.Format(time.RFC3339)
	}
	return response
}
