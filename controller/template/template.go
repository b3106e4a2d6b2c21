package template

import (
	"context"
	"errors"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yuanthio/life-admin-assistant-sub000/dto"
	"github.com/yuanthio/life-admin-assistant-sub000/middleware"
	"github.com/yuanthio/life-admin-assistant-sub000/model"
	"github.com/yuanthio/life-admin-assistant-sub000/services"
)

func TemplateController(router *gin.Engine, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	routes := router.Group("/template", middleware.AccessTokenMiddleware())
	{
		routes.POST("", func(c *gin.Context) {
			CreateTemplate(c, firestoreClient)
		})
		routes.GET("", func(c *gin.Context) {
			ListTemplates(c, firestoreClient)
		})
		routes.GET("/:templateid", func(c *gin.Context) {
			GetTemplate(c, firestoreClient)
		})
		routes.PUT("/:templateid", func(c *gin.Context) {
			UpdateTemplate(c, firestoreClient)
		})
		routes.DELETE("/:templateid", func(c *gin.Context) {
			DeleteTemplate(c, firestoreClient)
		})
		routes.POST("/:templateid/apply", func(c *gin.Context) {
			ApplyTemplate(c, firestoreClient, engine)
		})
	}
}

func CreateTemplate(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	var templateReq dto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&templateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	templateid := uuid.New().String()

	newTemplate := model.Template{
		TemplateID:  templateid,
		UserID:      userId,
		Name:        templateReq.Name,
		Description: templateReq.Description,
		Category:    templateReq.Category,
		Items:       toTemplateItems(templateReq.Items),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if _, err := firestoreClient.Collection("Templates").Doc(templateid).Set(ctx, newTemplate); err != nil {
		c.JSON(500, gin.H{"error": "Failed to create template"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Template created successfully",
		"templateID": templateid,
	})
}

func ListTemplates(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)

	ctx := context.Background()
	iter := firestoreClient.Collection("Templates").
		Where("userid", "==", userId).
		Documents(ctx)

	var templates []model.Template
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var template model.Template
		if err := doc.DataTo(&template); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse template data"})
			return
		}
		templates = append(templates, template)
	}

	if templates == nil {
		templates = []model.Template{}
	}

	c.JSON(http.StatusOK, templates)
}

func GetTemplate(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)
	templateid := c.Param("templateid")

	ctx := context.Background()
	template, err := ownedTemplate(ctx, firestoreClient, userId, templateid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	c.JSON(http.StatusOK, template)
}

func UpdateTemplate(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)
	templateid := c.Param("templateid")

	var templateReq dto.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&templateReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx := context.Background()
	if _, err := ownedTemplate(ctx, firestoreClient, userId, templateid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	updates := []firestore.Update{
		{Path: "updatedat", Value: time.Now()},
	}
	if templateReq.Name != "" {
		updates = append(updates, firestore.Update{Path: "name", Value: templateReq.Name})
	}
	if templateReq.Description != "" {
		updates = append(updates, firestore.Update{Path: "description", Value: templateReq.Description})
	}
	if templateReq.Category != "" {
		updates = append(updates, firestore.Update{Path: "category", Value: templateReq.Category})
	}
	if templateReq.Items != nil {
		updates = append(updates, firestore.Update{Path: "items", Value: toTemplateItems(templateReq.Items)})
	}

	if _, err := firestoreClient.Collection("Templates").Doc(templateid).Update(ctx, updates); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Template updated successfully",
		"templateID": templateid,
	})
}

func DeleteTemplate(c *gin.Context, firestoreClient *firestore.Client) {
	userId := c.MustGet("userId").(string)
	templateid := c.Param("templateid")

	ctx := context.Background()
	if _, err := ownedTemplate(ctx, firestoreClient, userId, templateid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	if _, err := firestoreClient.Collection("Templates").Doc(templateid).Delete(ctx); err != nil {
		c.JSON(500, gin.H{"error": "Failed to delete template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Template deleted successfully",
		"templateID": templateid,
	})
}

// ApplyTemplate instantiates every item of a template as a task owned by the
// caller, due item.DueInDays from now. Each dated task gets its reminder
// generated in the background.
func ApplyTemplate(c *gin.Context, firestoreClient *firestore.Client, engine *services.ReminderEngine) {
	userId := c.MustGet("userId").(string)
	templateid := c.Param("templateid")

	ctx := context.Background()
	template, err := ownedTemplate(ctx, firestoreClient, userId, templateid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}

	now := time.Now()
	var createdIDs []string
	for _, item := range template.Items {
		taskid := uuid.New().String()
		dueDate := now.AddDate(0, 0, item.DueInDays)

		newtask := model.Tasks{
			TaskID:      taskid,
			UserID:      userId,
			TemplateID:  template.TemplateID,
			Title:       item.Title,
			Description: item.Description,
			DueDate:     &dueDate,
			Completed:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := firestoreClient.Collection("Tasks").Doc(taskid).Set(ctx, newtask); err != nil {
			// Roll back tasks created earlier in this apply.
			for _, createdID := range createdIDs {
				firestoreClient.Collection("Tasks").Doc(createdID).Delete(ctx)
			}
			c.JSON(500, gin.H{"error": "Failed to create tasks from template"})
			return
		}
		createdIDs = append(createdIDs, taskid)
	}

	for _, taskid := range createdIDs {
		engine.GenerateForTaskAsync(taskid)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Template applied successfully",
		"templateID": templateid,
		"taskIDs":    createdIDs,
	})
}

func toTemplateItems(items []dto.TemplateItemRequest) []model.TemplateItem {
	converted := make([]model.TemplateItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, model.TemplateItem{
			Title:       item.Title,
			Description: item.Description,
			DueInDays:   item.DueInDays,
		})
	}
	return converted
}

var errTemplateNotFound = errors.New("template not found")

func ownedTemplate(ctx context.Context, firestoreClient *firestore.Client, userId, templateid string) (*model.Template, error) {
	doc, err := firestoreClient.Collection("Templates").Doc(templateid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errTemplateNotFound
		}
		return nil, err
	}

	var template model.Template
	if err := doc.DataTo(&template); err != nil {
		return nil, err
	}
	if template.UserID != userId {
		return nil, errTemplateNotFound
	}
	return &template, nil
}
