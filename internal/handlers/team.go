package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
	"gorm.io/gorm"
)

type JoinTeamRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

type TeamResponse struct {
	ID       uint            `json:"id"`
	TeamID   string          `json:"team_id"`
	TeamLead string          `json:"team_lead"`
	Code     string          `json:"code"`
	Theme    string          `json:"theme"`
	Mentor   string          `json:"mentor,omitempty"`
	Approval models.Decision `json:"is_approved"`
}

type MyTeamResponse struct {
	Team       TeamResponse            `json:"team"`
	Members    []types.StudentResponse `json:"members"`
	IsTeamLead bool                    `json:"is_team_lead"`
}

func CreateTeam(ctx *gin.Context) {
	student, err := utils.GetCurrentStudent(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	if student.TeamID != nil && *student.TeamID != "" {
		ctx.JSON(http.StatusConflict, gin.H{"error": "You already belong to a team"})
		return
	}

	team := models.Team{
		TeamID:   uuid.NewString(),
		TeamLead: student.StudentID,
		Code:     utils.GenerateTeamCode(),
		Approval: models.DecisionPending,
	}

	// The team row and the creator's membership are committed together so a
	// failed membership write cannot leave an orphan team behind.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).
			Where("id = ?", student.ID).
			Update("team_id", team.TeamID).Error
	})

	if err != nil {
		log.Printf("Failed to create team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	refreshed, err := reloadStudent(student.ID)

	if err != nil {
		log.Printf("Failed to reload student %d: %v", student.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"team":    teamResponse(team),
		"student": studentResponse(refreshed),
	})
}

func JoinTeam(ctx *gin.Context) {
	student, err := utils.GetCurrentStudent(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	if student.TeamID != nil && *student.TeamID != "" {
		ctx.JSON(http.StatusConflict, gin.H{"error": "You already belong to a team"})
		return
	}

	var req JoinTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var team models.Team

	if err := db.DB.Where("code = ?", code).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invalid team code"})
		} else {
			log.Printf("Database error when fetching team: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Capacity is a count check, not a stored constraint. Two joins racing
	// past it can overfill the team.
	var memberCount int64

	if err := db.DB.Model(&models.Student{}).Where("team_id = ?", team.TeamID).Count(&memberCount).Error; err != nil {
		log.Printf("Failed to count team members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if memberCount >= models.MaxTeamSize {
		ctx.JSON(http.StatusConflict, gin.H{"error": "This team is already full (maximum 4 members)"})
		return
	}

	if err := db.DB.Model(&models.Student{}).
		Where("id = ?", student.ID).
		Update("team_id", team.TeamID).Error; err != nil {
		log.Printf("Failed to join team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join team"})
		return
	}

	refreshed, err := reloadStudent(student.ID)

	if err != nil {
		log.Printf("Failed to reload student %d: %v", student.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"team":    teamResponse(team),
		"student": studentResponse(refreshed),
	})
}

func GetMyTeam(ctx *gin.Context) {
	student, teamID, err := utils.RequireTeam(ctx)

	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "You are not part of a team yet"})
		return
	}

	var team models.Team

	if err := db.DB.Where("team_id = ?", teamID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			log.Printf("Database error when fetching team: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var members []models.Student

	if err := db.DB.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		log.Printf("Failed to fetch team members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team members"})
		return
	}

	memberResponses := make([]types.StudentResponse, 0, len(members))
	for _, member := range members {
		memberResponses = append(memberResponses, studentResponse(member))
	}

	ctx.JSON(http.StatusOK, MyTeamResponse{
		Team:       teamResponse(team),
		Members:    memberResponses,
		IsTeamLead: student.StudentID == team.TeamLead,
	})
}

func teamResponse(team models.Team) TeamResponse {
	return TeamResponse{
		ID:       team.ID,
		TeamID:   team.TeamID,
		TeamLead: team.TeamLead,
		Code:     team.Code,
		Theme:    team.Theme,
		Mentor:   team.Mentor,
		Approval: team.Approval,
	}
}

func reloadStudent(id uint) (models.Student, error) {
	var student models.Student
	err := db.DB.First(&student, id).Error
	return student, err
}
