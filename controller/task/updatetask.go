package task

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func UpdateTask(c *gin.Context, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	taskid := c.Param("taskid")

	var taskReq dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	existing, err := ownedTask(ctx, firestoreClient, userId, taskid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	updates := []firestore.Update{
		{Path: "updatedat", Value: time.Now()},
	}
	regenerate := false

	if taskReq.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *taskReq.Title})
	}
	if taskReq.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *taskReq.Description})
	}
	if taskReq.DueDate != nil {
		if *taskReq.DueDate == "" {
			updates = append(updates, firestore.Update{Path: "duedate", Value: firestore.Delete})
			regenerate = existing.DueDate != nil
		} else {
			parsedDate, err := time.Parse(time.RFC3339, *taskReq.DueDate)
			if err != nil {
				c.JSON(400, gin.H{"error": "Invalid duedate format"})
				return
			}
			updates = append(updates, firestore.Update{Path: "duedate", Value: parsedDate})
			regenerate = existing.DueDate == nil || !existing.DueDate.Equal(parsedDate)
		}
	}
	if taskReq.Completed != nil {
		updates = append(updates, firestore.Update{Path: "completed", Value: *taskReq.Completed})
		if *taskReq.Completed != existing.Completed {
			regenerate = true
		}
	}

	if _, err := firestoreClient.Collection("Tasks").Doc(taskid).Update(ctx, updates); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update task"})
		return
	}

	// A changed due date invalidates stored reminders; regeneration runs
	// detached so the update response is never held up.
	if regenerate {
		engine.GenerateForTaskAsync(taskid)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"taskID":  taskid,
	})
}

func CompleteTask(c *gin.Context, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	taskid := c.Param("taskid")

	ctx := context.Background()
	if _, err := ownedTask(ctx, firestoreClient, userId, taskid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	_, err := firestoreClient.Collection("Tasks").Doc(taskid).Update(ctx, []firestore.Update{
		{Path: "completed", Value: true},
		{Path: "updatedat", Value: time.Now()},
	})
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to complete task"})
		return
	}

	// Completion clears any live reminder for the task.
	engine.GenerateForTaskAsync(taskid)

	c.JSON(http.StatusOK, gin.H{
		"message": "Task completed",
		"taskID":  taskid,
	})
}

// ownedTask loads a task and rejects it when it belongs to another user, so
// foreign task IDs are indistinguishable from missing ones.
func ownedTask(ctx context.Context, firestoreClient *firestore.Client, userId, taskid string) (*model.Tasks, error) {
	doc, err := firestoreClient.Collection("Tasks").Doc(taskid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, services.ErrTaskNotFound
		}
		return nil, err
	}

	var task model.Tasks
	if err := doc.DataTo(&task); err != nil {
		return nil, err
	}
	if task.UserID != userId {
		return nil, services.ErrTaskNotFound
	}
	return &task, nil
}
