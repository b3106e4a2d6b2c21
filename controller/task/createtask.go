package task

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func Createtask(c *gin.Context, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	var taskReq dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	_, err := services.GetUserDataByUserid(ctx, firestoreClient, userId)
	if err != nil {
		c.JSON(404, gin.H{"error": err.Error()})
		return
	}

	var dueDate *time.Time
	if taskReq.DueDate != "" {
		parsedDate, err := time.Parse(time.RFC3339, taskReq.DueDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid duedate format"})
			return
		}
		dueDate = &parsedDate
	}

	if taskReq.TemplateID != "" {
		templateDoc, err := firestoreClient.Collection("Templates").Doc(taskReq.TemplateID).Get(ctx)
		if err != nil || !templateDoc.Exists() {
			c.JSON(404, gin.H{"error": "Template not found"})
			return
		}
		var template model.Template
		if err := templateDoc.DataTo(&template); err != nil || template.UserID != userId {
			c.JSON(404, gin.H{"error": "Template not found"})
			return
		}
	}

	taskid := uuid.New().String()

	newtask := model.Tasks{
		TaskID:      taskid,
		UserID:      userId,
		TemplateID:  taskReq.TemplateID,
		Title:       taskReq.Title,
		Description: taskReq.Description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	_, err = firestoreClient.Collection("Tasks").Doc(taskid).Set(ctx, newtask)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create task"})
		return
	}

	// Reminder generation must not delay or fail the task write.
	if dueDate != nil {
		engine.GenerateForTaskAsync(taskid)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskID":  taskid,
	})
}
