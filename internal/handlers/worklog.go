package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/utils"
	"gorm.io/gorm"
)

type WorkLogRequest struct {
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	ExpectedTask  string `json:"expected_task" binding:"required"`
	CompletedTask string `json:"completed_task" binding:"required"`
}

type WorkLogResponse struct {
	ID             uint            `json:"id"`
	StudentID      string          `json:"student_id"`
	TeamID         string          `json:"team_id,omitempty"`
	Date           string          `json:"date"`
	ExpectedTask   string          `json:"expected_task"`
	CompletedTask  string          `json:"completed_task"`
	MentorApproved models.Decision `json:"mentor_approved"`
	Comments       string          `json:"comments,omitempty"`
}

func CreateWorkLog(ctx *gin.Context) {
	student, err := utils.GetCurrentStudent(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	var req WorkLogRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Date, expected work and completed work are required"})
		return
	}

	workLog := models.WorkLog{
		StudentID:      student.StudentID,
		Date:           req.Date,
		ExpectedTask:   req.ExpectedTask,
		CompletedTask:  req.CompletedTask,
		MentorApproved: models.DecisionPending,
	}

	if student.TeamID != nil {
		workLog.TeamID = *student.TeamID
	}

	if err := db.DB.Create(&workLog).Error; err != nil {
		log.Printf("Failed to create work log: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log work"})
		return
	}

	ctx.JSON(http.StatusCreated, workLogResponse(workLog))
}

func ListWorkLogs(ctx *gin.Context) {
	student, err := utils.GetCurrentStudent(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	var workLogs []models.WorkLog

	if err := db.DB.Where("student_id = ?", student.StudentID).
		Order("date DESC").
		Find(&workLogs).Error; err != nil {
		log.Printf("Failed to fetch work logs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work logs"})
		return
	}

	responses := make([]WorkLogResponse, 0, len(workLogs))
	for _, workLog := range workLogs {
		responses = append(responses, workLogResponse(workLog))
	}

	ctx.JSON(http.StatusOK, responses)
}

func UpdateWorkLog(ctx *gin.Context) {
	workLog, ok := fetchOwnedWorkLog(ctx)

	if !ok {
		return
	}

	// Once a mentor records a decision the log is frozen; the check runs
	// before any binding or write.
	if !workLog.Mutable() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Cannot edit logs that have been reviewed by mentor"})
		return
	}

	var req WorkLogRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Date, expected work and completed work are required"})
		return
	}

	workLog.Date = req.Date
	workLog.ExpectedTask = req.ExpectedTask
	workLog.CompletedTask = req.CompletedTask

	if err := db.DB.Save(&workLog).Error; err != nil {
		log.Printf("Failed to update work log: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work log"})
		return
	}

	ctx.JSON(http.StatusOK, workLogResponse(workLog))
}

func DeleteWorkLog(ctx *gin.Context) {
	workLog, ok := fetchOwnedWorkLog(ctx)

	if !ok {
		return
	}

	if !workLog.Mutable() {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete logs that have been reviewed by mentor"})
		return
	}

	if err := db.DB.Delete(&workLog).Error; err != nil {
		log.Printf("Failed to delete work log: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete work log"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func fetchOwnedWorkLog(ctx *gin.Context) (models.WorkLog, bool) {
	var workLog models.WorkLog

	student, err := utils.GetCurrentStudent(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return workLog, false
	}

	logID, err := utils.GetLogID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return workLog, false
	}

	if err := db.DB.Where("id = ? AND student_id = ?", logID, student.StudentID).First(&workLog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Work log not found"})
		} else {
			log.Printf("Database error when fetching work log: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve work log"})
		}
		return workLog, false
	}

	return workLog, true
}

func workLogResponse(workLog models.WorkLog) WorkLogResponse {
	return WorkLogResponse{
		ID:             workLog.ID,
		StudentID:      workLog.StudentID,
		TeamID:         workLog.TeamID,
		Date:           workLog.Date,
		ExpectedTask:   workLog.ExpectedTask,
		CompletedTask:  workLog.CompletedTask,
		MentorApproved: workLog.MentorApproved,
		Comments:       workLog.Comments,
	}
}
