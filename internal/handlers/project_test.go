package handlers

import (
	"net/http"
	"testing"

	"github.com/teamhub-dev/teamhub/db"
	"github.com/teamhub-dev/teamhub/internal/models"
)

func saveProjectBody(title, description, theme string) map[string]string {
	return map[string]string{
		"title":       title,
		"description": description,
		"theme":       theme,
	}
}

func TestSaveProjectCreatesPendingProject(t *testing.T) {
	setupTestDB(t)

	team := createTeam(t, "team-1", "REG001", "AB12CD")
	lead := createStudent(t, "REG001", &team.TeamID)

	ctx, w := authedContext(t, lead)
	withJSONBody(t, ctx, http.MethodPut, saveProjectBody("Smart Campus", "An IoT campus platform", "IoT"))

	SaveProject(ctx)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp ProjectResponse
	decodeBody(t, w, &resp)

	if resp.Approval != models.DecisionPending {
		t.Fatalf("approval = %q, want pending", resp.Approval)
	}
	if len(resp.Theme) != 1 || resp.Theme[0] != "IoT" {
		t.Fatalf("theme = %v, want [IoT]", resp.Theme)
	}
	if resp.Status != "An IoT campus platform" {
		t.Fatalf("status = %q, want description text", resp.Status)
	}
}

func TestSaveProjectRejectsDuplicateTitle(t *testing.T) {
	setupTestDB(t)

	other := createTeam(t, "team-1", "REG001", "AB12CD")
	otherLead := createStudent(t, "REG001", &other.TeamID)
	ctx, w := authedContext(t, otherLead)
	withJSONBody(t, ctx, http.MethodPut, saveProjectBody("Smart Campus", "First project", "IoT"))
	SaveProject(ctx)
	if w.Code != http.StatusCreated {
		t.Fatalf("seed project status = %d: %s", w.Code, w.Body.String())
	}

	team := createTeam(t, "team-2", "REG002", "EF34GH")
	lead := createStudent(t, "REG002", &team.TeamID)
	ctx, w = authedContext(t, lead)
	withJSONBody(t, ctx, http.MethodPut, saveProjectBody("Smart Campus", "Second project", "AI/ML"))

	SaveProject(ctx)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
	}

	var count int64
	db.DB.Model(&models.Project{}).Count(&count)
	if count != 1 {
		t.Fatalf("project count = %d, want 1", count)
	}
}

func TestSaveProjectKeepsOwnTitleOnUpdate(t *testing.T) {
	setupTestDB(t)

	team := createTeam(t, "team-1", "REG001", "AB12CD")
	lead := createStudent(t, "REG001", &team.TeamID)

	ctx, w := authedContext(t, lead)
	withJSONBody(t, ctx, http.MethodPut, saveProjectBody("Smart Campus", "First draft", "IoT"))
	SaveProject(ctx)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	// Re-saving with the unchanged title must not trip the duplicate check.
	ctx, w = authedContext(t, lead)
	withJSONBody(t, ctx, http.MethodPut, saveProjectBody("Smart Campus", "Second draft", "IoT"))
	SaveProject(ctx)

	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var project models.Project
	if err := db.DB.Where("team_id = ?", team.TeamID).First(&project).Error; err != nil {
		t.Fatalf("load project: %v", err)
	}
	if project.Status != "Second draft" {
		t.Fatalf("status = %q, want %q", project.Status, "Second draft")
	}

	var count int64
	db.DB.Model(&models.Project{}).Count(&count)
	if count != 1 {
		t.Fatalf("project count = %d, want 1", count)
	}
}

func TestSaveProjectLeadOnly(t *testing.T) {
	setupTestDB(t)

	team := createTeam(t, "team-1", "REG001", "AB12CD")
	createStudent(t, "REG001", &team.TeamID)
	member := createStudent(t, "REG002", &team.TeamID)

	ctx, w := authedContext(t, member)
	withJSONBody(t, ctx, http.MethodPut, saveProjectBody("Smart Campus", "Text", "IoT"))

	SaveProject(ctx)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestSaveProjectRequiresAllFields(t *testing.T) {
	setupTestDB(t)

	team := createTeam(t, "team-1", "REG001", "AB12CD")
	lead := createStudent(t, "REG001", &team.TeamID)

	for name, body := range map[string]map[string]string{
		"missing title":       saveProjectBody("", "Text", "IoT"),
		"missing description": saveProjectBody("Smart Campus", "", "IoT"),
		"missing theme":       saveProjectBody("Smart Campus", "Text", ""),
		"blank title":         saveProjectBody("   ", "Text", "IoT"),
	} {
		ctx, w := authedContext(t, lead)
		withJSONBody(t, ctx, http.MethodPut, body)

		SaveProject(ctx)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want %d", name, w.Code, http.StatusBadRequest)
		}
	}
}

func TestGetProjectNotFound(t *testing.T) {
	setupTestDB(t)

	team := createTeam(t, "team-1", "REG001", "AB12CD")
	lead := createStudent(t, "REG001", &team.TeamID)

	ctx, w := authedContext(t, lead)
	GetProject(ctx)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
