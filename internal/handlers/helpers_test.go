package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/middleware"
	"github.com/teamhub-dev/teamhub/internal/models"
	"github.com/teamhub-dev/teamhub/internal/types"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB points the package-global connection at a fresh in-memory
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&models.Student{},
		&models.Team{},
		&models.Project{},
		&models.WorkLog{},
		&models.Review{},
		&models.ReviewAttachment{},
		&models.Template{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })
}

func createStudent(t *testing.T, studentID string, teamID *string) models.Student {
	t.Helper()

	student := models.Student{
		Name:         "Student " + studentID,
		Email:        studentID + "@example.edu",
		StudentID:    studentID,
		PasswordHash: "x",
		Department:   "CSE",
		Section:      "A",
		TeamID:       teamID,
	}

	if err := db.DB.Create(&student).Error; err != nil {
		t.Fatalf("create student %s: %v", studentID, err)
	}

	return student
}

func createTeam(t *testing.T, teamID, lead, code string) models.Team {
	t.Helper()

	team := models.Team{
		TeamID:   teamID,
		TeamLead: lead,
		Code:     code,
		Approval: models.DecisionPending,
	}

	if err := db.DB.Create(&team).Error; err != nil {
		t.Fatalf("create team %s: %v", teamID, err)
	}

	return team
}

func authedContext(t *testing.T, student models.Student) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	ctx.Set(types.ContextStudentKey, middleware.AuthenticatedStudent{
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		StudentID:  student.StudentID,
		Department: student.Department,
		Section:    student.Section,
		TeamID:     student.TeamID,
	})

	return ctx, w
}

func withJSONBody(t *testing.T, ctx *gin.Context, method string, payload any) {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	ctx.Request = httptest.NewRequest(method, "/", bytes.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
