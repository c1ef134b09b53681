package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
)

type TemplateResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Review string `json:"review,omitempty"`
	Link   string `json:"link,omitempty"`
}

// ListTemplates returns the reference templates for a review stage. Without
// a stage query every template is returned.
func ListTemplates(ctx *gin.Context) {
	stage := ctx.Query("stage")

	var templates []models.Template

	if err := db.DB.Find(&templates).Error; err != nil {
		log.Printf("Failed to fetch templates: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve templates"})
		return
	}

	responses := make([]TemplateResponse, 0, len(templates))
	for _, template := range templates {
		if stage != "" && !template.MatchesStage(stage) {
			continue
		}

		responses = append(responses, TemplateResponse{
			ID:     template.ID,
			Name:   template.Name,
			Review: template.Review,
			Link:   template.Link,
		})
	}

	ctx.JSON(http.StatusOK, responses)
}
