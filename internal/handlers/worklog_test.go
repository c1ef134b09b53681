package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
)

func workLogBody(date, expected, completed string) map[string]string {
	return map[string]string{
		"date":           date,
		"expected_task":  expected,
		"completed_task": completed,
	}
}

func seedWorkLog(t *testing.T, studentID string, decision models.Decision) models.WorkLog {
	t.Helper()

	workLog := models.WorkLog{
		StudentID:      studentID,
		Date:           "2025-03-10",
		ExpectedTask:   "Design schema",
		CompletedTask:  "Drafted schema",
		MentorApproved: decision,
	}

	if err := db.DB.Create(&workLog).Error; err != nil {
		t.Fatalf("seed work log: %v", err)
	}

	return workLog
}

func logIDParam(ctx *gin.Context, id uint) {
	ctx.Params = gin.Params{{Key: "log_id", Value: fmt.Sprint(id)}}
}

func TestCreateWorkLogStartsPending(t *testing.T) {
	setupTestDB(t)

	teamID := "team-1"
	student := createStudent(t, "REG001", &teamID)

	ctx, w := authedContext(t, student)
	withJSONBody(t, ctx, http.MethodPost, workLogBody("2025-03-10", "Plan sprint", "Planned sprint"))

	CreateWorkLog(ctx)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var workLog models.WorkLog
	if err := db.DB.First(&workLog).Error; err != nil {
		t.Fatalf("work log not created: %v", err)
	}
	if workLog.MentorApproved != models.DecisionPending {
		t.Fatalf("mentor_approved = %q, want pending", workLog.MentorApproved)
	}
	if workLog.TeamID != teamID {
		t.Fatalf("team_id = %q, want %q", workLog.TeamID, teamID)
	}
}

func TestCreateWorkLogRejectsBadDate(t *testing.T) {
	setupTestDB(t)

	student := createStudent(t, "REG001", nil)
	ctx, w := authedContext(t, student)
	withJSONBody(t, ctx, http.MethodPost, workLogBody("10/03/2025", "Plan", "Planned"))

	CreateWorkLog(ctx)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListWorkLogsNewestFirst(t *testing.T) {
	setupTestDB(t)

	student := createStudent(t, "REG001", nil)
	for _, date := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		workLog := models.WorkLog{
			StudentID:      student.StudentID,
			Date:           date,
			ExpectedTask:   "e",
			CompletedTask:  "c",
			MentorApproved: models.DecisionPending,
		}
		if err := db.DB.Create(&workLog).Error; err != nil {
			t.Fatalf("seed log %s: %v", date, err)
		}
	}
	// Another student's logs must not leak in.
	seedWorkLog(t, "REG999", models.DecisionPending)

	ctx, w := authedContext(t, student)
	ListWorkLogs(ctx)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp []WorkLogResponse
	decodeBody(t, w, &resp)

	if len(resp) != 3 {
		t.Fatalf("len(logs) = %d, want 3", len(resp))
	}
	for idx, want := range []string{"2025-03-10", "2025-03-09", "2025-03-08"} {
		if resp[idx].Date != want {
			t.Fatalf("logs[%d].date = %q, want %q", idx, resp[idx].Date, want)
		}
	}
}

func TestUpdateWorkLogWhilePending(t *testing.T) {
	setupTestDB(t)

	student := createStudent(t, "REG001", nil)
	workLog := seedWorkLog(t, student.StudentID, models.DecisionPending)

	ctx, w := authedContext(t, student)
	withJSONBody(t, ctx, http.MethodPut, workLogBody("2025-03-11", "Revised plan", "Revised work"))
	logIDParam(ctx, workLog.ID)

	UpdateWorkLog(ctx)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var reloaded models.WorkLog
	if err := db.DB.First(&reloaded, workLog.ID).Error; err != nil {
		t.Fatalf("reload log: %v", err)
	}
	if reloaded.ExpectedTask != "Revised plan" {
		t.Fatalf("expected_task = %q, want %q", reloaded.ExpectedTask, "Revised plan")
	}
}

func TestWorkLogFrozenOnceDecided(t *testing.T) {
	setupTestDB(t)

	student := createStudent(t, "REG001", nil)

	for _, decision := range []models.Decision{models.DecisionApproved, models.DecisionRejected} {
		workLog := seedWorkLog(t, student.StudentID, decision)

		ctx, w := authedContext(t, student)
		withJSONBody(t, ctx, http.MethodPut, workLogBody("2025-03-11", "e", "c"))
		logIDParam(ctx, workLog.ID)

		UpdateWorkLog(ctx)

		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: update status = %d, want %d", decision, w.Code, http.StatusForbidden)
		}

		ctx, w = authedContext(t, student)
		logIDParam(ctx, workLog.ID)

		DeleteWorkLog(ctx)

		if w.Code != http.StatusForbidden {
			t.Fatalf("%s: delete status = %d, want %d", decision, w.Code, http.StatusForbidden)
		}

		var reloaded models.WorkLog
		if err := db.DB.First(&reloaded, workLog.ID).Error; err != nil {
			t.Fatalf("%s: log should still exist: %v", decision, err)
		}
		if reloaded.ExpectedTask != "Design schema" {
			t.Fatalf("%s: expected_task = %q, log was modified", decision, reloaded.ExpectedTask)
		}
	}
}

func TestDeleteWorkLogWhilePending(t *testing.T) {
	setupTestDB(t)

	student := createStudent(t, "REG001", nil)
	workLog := seedWorkLog(t, student.StudentID, models.DecisionPending)

	ctx, w := authedContext(t, student)
	logIDParam(ctx, workLog.ID)

	DeleteWorkLog(ctx)
	ctx.Writer.WriteHeaderNow()

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}

	var count int64
	db.DB.Model(&models.WorkLog{}).Where("id = ?", workLog.ID).Count(&count)
	if count != 0 {
		t.Fatalf("log count = %d, want 0", count)
	}
}

func TestWorkLogOwnershipEnforced(t *testing.T) {
	setupTestDB(t)

	createStudent(t, "REG001", nil)
	workLog := seedWorkLog(t, "REG001", models.DecisionPending)

	intruder := createStudent(t, "REG002", nil)
	ctx, w := authedContext(t, intruder)
	withJSONBody(t, ctx, http.MethodPut, workLogBody("2025-03-11", "e", "c"))
	logIDParam(ctx, workLog.ID)

	UpdateWorkLog(ctx)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
