package task

import (
	"context"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func DeleteTask(c *gin.Context, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	taskid := c.Param("taskid")

	ctx := context.Background()
	if _, err := ownedTask(ctx, firestoreClient, userId, taskid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	// Reminders go first so a partial failure never strands unsent rows.
	if err := engine.DeleteTaskWithReminders(ctx, taskid); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"taskID":  taskid,
	})
}
