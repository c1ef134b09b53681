package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/utils"
	"gorm.io/gorm"
)

type SaveProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Theme       string `json:"theme" binding:"required"`
}

type ProjectResponse struct {
	ID       uint            `json:"id"`
	TeamID   string          `json:"team_id"`
	Title    string          `json:"title"`
	Status   string          `json:"status"`
	Theme    []string        `json:"theme"`
	Approval models.Decision `json:"is_approved"`
}

func GetProject(ctx *gin.Context) {
	_, teamID, err := utils.RequireTeam(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not part of a team yet"})
		return
	}

	var project models.Project

	if err := db.DB.Where("team_id = ?", teamID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Your team does not have a project yet"})
		} else {
			log.Printf("Database error when fetching project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

// SaveProject creates the team's project on first call and updates it on
// later ones. Only the team lead may call it, and the title must not be in
// use by any other team's project.
func SaveProject(ctx *gin.Context) {
	student, teamID, err := utils.RequireTeam(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not part of a team yet"})
		return
	}

	var team models.Team

	if err := db.DB.Where("team_id = ?", teamID).First(&team).Error; err != nil {
		log.Printf("Database error when fetching team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if student.StudentID != team.TeamLead {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the team lead can manage the project"})
		return
	}

	var req SaveProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title, description and theme are required"})
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if req.Title == "" || req.Description == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Title, description and theme are required"})
		return
	}

	var existing models.Project
	hasProject := true

	if err := db.DB.Where("team_id = ?", teamID).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when fetching project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		hasProject = false
	}

	// Title uniqueness is a read-then-write check; a concurrent save can slip
	// through the window, in which case the unique index on title rejects the
	// second insert with a less friendly error.
	dupQuery := db.DB.Model(&models.Project{}).Where("title = ?", req.Title)
	if hasProject {
		dupQuery = dupQuery.Where("id != ?", existing.ID)
	}

	var duplicates int64

	if err := dupQuery.Count(&duplicates).Error; err != nil {
		log.Printf("Failed to check title uniqueness: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if duplicates > 0 {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A project with this title already exists"})
		return
	}

	themeJSON, err := json.Marshal([]string{req.Theme})

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid theme"})
		return
	}

	if hasProject {
		existing.Title = req.Title
		existing.Status = req.Description
		existing.Theme = themeJSON

		if err := db.DB.Save(&existing).Error; err != nil {
			log.Printf("Failed to update project: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
			return
		}

		ctx.JSON(http.StatusOK, projectResponse(existing))
		return
	}

	project := models.Project{
		TeamID:   teamID,
		Title:    req.Title,
		Status:   req.Description,
		Theme:    themeJSON,
		Approval: models.DecisionPending,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func projectResponse(project models.Project) ProjectResponse {
	var theme []string
	if err := json.Unmarshal(project.Theme, &theme); err != nil {
		theme = nil
	}

	return ProjectResponse{
		ID:       project.ID,
		TeamID:   project.TeamID,
		Title:    project.Title,
		Status:   project.Status,
		Theme:    theme,
		Approval: project.Approval,
	}
}
