package task

import (
	"context"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/iterator"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
)

func ListTasks(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	ctx := context.Background()
	iter := firestoreClient.Collection("Tasks").
		Where("userid", "==", userId).
		OrderBy("createdat", firestore.Desc).
		Documents(ctx)

	var taskResponses []dto.TaskResponse
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
		taskResponses = append(taskResponses, toTaskResponse(task))
	}

	if taskResponses == nil {
		taskResponses = []dto.TaskResponse{}
	}

	c.JSON(http.StatusOK, taskResponses)
}

func GetTask(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)
	taskid := c.Param("taskid")

	ctx := context.Background()
	task, err := ownedTask(ctx, firestoreClient, userId, taskid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(*task))
}
