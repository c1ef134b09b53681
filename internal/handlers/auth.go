package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/auth"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"github.com/teamhub-dev/teamhub/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterStudentRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	StudentID  string `json:"student_id" binding:"required"`
	Department string `json:"department"`
	Section    string `json:"section"`
	Password   string `json:"password" binding:"required,min=8"`
}

type LoginStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

func RegisterStudent(ctx *gin.Context) {
	var req RegisterStudentRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.StudentID = strings.TrimSpace(req.StudentID)

	var existing models.Student

	err := db.DB.Where("student_id = ? OR email = ?", req.StudentID, req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Student ID or email already registered"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing student: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	student := models.Student{
		Name:         req.Name,
		Email:        req.Email,
		StudentID:    req.StudentID,
		Department:   req.Department,
		Section:      req.Section,
		PasswordHash: string(passwordHash),
	}

	if err := db.DB.Create(&student).Error; err != nil {
		log.Printf("Failed to create student: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(student.ID, student.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setAuthCookie(ctx, token)

	ctx.JSON(http.StatusCreated, gin.H{
		"student": studentResponse(student),
	})
}

func LoginStudent(ctx *gin.Context) {
	var req LoginStudentRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var student models.Student

	err := db.DB.Where("student_id = ?", strings.TrimSpace(req.StudentID)).First(&student).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID or password"})
			return
		}
		log.Printf("Database error when fetching student: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID or password"})
		return
	}

	token, err := auth.GenerateJWT(student.ID, student.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setAuthCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"student": studentResponse(student),
	})
}

func Me(ctx *gin.Context) {
	currentStudent, err := utils.GetCurrentStudent(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Student not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"student": types.StudentResponse{
			ID:         currentStudent.ID,
			Name:       currentStudent.Name,
			Email:      currentStudent.Email,
			StudentID:  currentStudent.StudentID,
			Department: currentStudent.Department,
			Section:    currentStudent.Section,
			TeamID:     currentStudent.TeamID,
		},
	})
}

func LogoutStudent(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Domain:   Domain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func setAuthCookie(ctx *gin.Context, token string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   60 * 60 * 24 * 7,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func studentResponse(student models.Student) types.StudentResponse {
	return types.StudentResponse{
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		StudentID:  student.StudentID,
		Department: student.Department,
		Section:    student.Section,
		TeamID:     student.TeamID,
	}
}
