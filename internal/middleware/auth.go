package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/auth"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
)

// AuthenticatedStudent is the per-request session snapshot. It is rebuilt
// from the students table on every request, so TeamID reflects the latest
// membership without any client-side cache to invalidate.
type AuthenticatedStudent struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	StudentID  string  `json:"student_id"`
	Department string  `json:"department"`
	Section    string  `json:"section"`
	TeamID     *string `json:"team_id"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		studentIDFloat, ok := claims["student_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid student ID in token claims"})
			return
		}

		studentID := uint(studentIDFloat)

		var student models.Student

		if err := db.DB.Where("id = ?", studentID).First(&student).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Student not found"})
			return
		}

		ctx.Set(types.ContextStudentKey, AuthenticatedStudent{
			ID:         student.ID,
			Name:       student.Name,
			Email:      student.Email,
			StudentID:  student.StudentID,
			Department: student.Department,
			Section:    student.Section,
			TeamID:     student.TeamID,
		})
		ctx.Next()
	}
}

// extractToken accepts either a Bearer header (API clients) or the token
// cookie set at login (browser clients).
func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
