package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/internal/middleware"
	"github.com/teamhub-dev/teamhub/internal/types"
)

func GetCurrentStudent(ctx *gin.Context) (middleware.AuthenticatedStudent, error) {
	student, exists := ctx.Get(types.ContextStudentKey)

	if !exists {
		return middleware.AuthenticatedStudent{}, fmt.Errorf("Student not authenticated")
	}

	authenticatedStudent, ok := student.(middleware.AuthenticatedStudent)

	if !ok {
		return middleware.AuthenticatedStudent{}, fmt.Errorf("Invalid student type in context")
	}

	return authenticatedStudent, nil
}

// RequireTeam returns the caller's team identifier or an error when the
// student has not joined a team yet.
func RequireTeam(ctx *gin.Context) (middleware.AuthenticatedStudent, string, error) {
	student, err := GetCurrentStudent(ctx)

	if err != nil {
		return middleware.AuthenticatedStudent{}, "", err
	}

	if student.TeamID == nil || *student.TeamID == "" {
		return student, "", fmt.Errorf("Student is not part of a team")
	}

	return student, *student.TeamID, nil
}
