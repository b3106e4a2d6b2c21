package reminder

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/iterator"

	"github.com/yuanthio/life-admin-assistant-sub000/middleware"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func ReminderController(router *gin.Engine, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	routes := router.Group("/reminder", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			ListReminders(c, firestoreClient, engine)
		})
		routes.GET("/dashboard", func(c *gin.Context) {
			DashboardReminders(c, engine)
		})
		routes.PUT("/:reminderid/read", func(c *gin.Context) {
			MarkReminderRead(c, engine)
		})
	}
}

// ListReminders is the legacy non-deduplicated view: the raw unsent reminder
// list plus overdue/due-today/upcoming task lists derived straight from the
// tasks themselves. New consumers should read /reminder/dashboard.
func ListReminders(c *gin.Context, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	ctx := context.Background()

	// Catch up on overdue notices before reading.
	if _, err := engine.SweepOverdue(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep overdue tasks"})
		return
	}

	reminders, err := engine.ListUnsent(ctx, userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reminders"})
		return
	}
	if reminders == nil {
		reminders = []model.Reminder{}
	}

	var tasks []model.Tasks
	iter := firestoreClient.Collection("Tasks").
		Where("userid", "==", userId).
		Where("completed", "==", false).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var task model.Tasks
		if err := doc.DataTo(&task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse task data"})
			return
		}
		tasks = append(tasks, task)
	}

	overdueTasks, dueTodayTasks, upcomingTasks := engine.GroupTasksByDue(tasks)
	if overdueTasks == nil {
		overdueTasks = []model.Tasks{}
	}
	if dueTodayTasks == nil {
		dueTodayTasks = []model.Tasks{}
	}
	if upcomingTasks == nil {
		upcomingTasks = []model.Tasks{}
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders":     reminders,
		"overdueTasks":  overdueTasks,
		"dueTodayTasks": dueTodayTasks,
		"upcomingTasks": upcomingTasks,
	})
}

// DashboardReminders returns one most-urgent reminder per task, bucketed,
// with the recent feed and counts.
func DashboardReminders(c *gin.Context, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	ctx := context.Background()

	if _, err := engine.SweepOverdue(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sweep overdue tasks"})
		return
	}

	dashboard, err := engine.NearestReminders(ctx, userId)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build reminder dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func MarkReminderRead(c *gin.Context, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	reminderid := c.Param("reminderid")

	ctx := context.Background()
	if err := engine.MarkReminderRead(ctx, userId, reminderid); err != nil {
		if errors.Is(err, services.ErrReminderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark reminder as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Reminder marked as read",
		"reminderID": reminderid,
	})
}
