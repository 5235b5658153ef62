package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"agileboard/internal/apperr"
	"agileboard/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func mustCreateUser(t *testing.T, s *Store, username, email string) models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), username, email, "password123", "")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func TestCreateUserDefaultsAndValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustCreateUser(t, s, "alice", "alice@example.com")
	if u.Role != models.DefaultRole {
		t.Fatalf("expected default role %q, got %q", models.DefaultRole, u.Role)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Fatal("password must be stored as a hash")
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	_, err := s.CreateUser(ctx, "", "b@example.com", "pw", "")
	if !errors.Is(err, apperr.New(apperr.CodeValidation, "")) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = s.CreateUser(ctx, "bob", "b@example.com", "", "")
	if !errors.Is(err, apperr.New(apperr.CodeValidation, "")) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUserUniqueness(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	conflict := apperr.New(apperr.CodeConflict, "")

	mustCreateUser(t, s, "alice", "alice@example.com")

	_, err := s.CreateUser(ctx, "alice", "other@example.com", "pw", "")
	if !errors.Is(err, conflict) {
		t.Fatalf("expected conflict for duplicate username, got %v", err)
	}
	_, err = s.CreateUser(ctx, "other", "alice@example.com", "pw", "")
	if !errors.Is(err, conflict) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := mustCreateUser(t, s, "alice", "alice@example.com")

	byName, err := s.AuthenticateUser(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("authenticate by username: %v", err)
	}
	byEmail, err := s.AuthenticateUser(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("authenticate by email: %v", err)
	}
	if byName.ID != created.ID || byEmail.ID != created.ID {
		t.Fatal("expected both identifiers to resolve the same user")
	}
}

func TestAuthenticateUserUniformFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, s, "alice", "alice@example.com")

	_, wrongPassword := s.AuthenticateUser(ctx, "alice", "nope")
	_, noSuchUser := s.AuthenticateUser(ctx, "mallory", "nope")

	unauthorized := apperr.New(apperr.CodeUnauthorized, "")
	if !errors.Is(wrongPassword, unauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(noSuchUser, unauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", noSuchUser)
	}
	// The two failures must be indistinguishable.
	if wrongPassword.Error() != noSuchUser.Error() {
		t.Fatalf("login failures leak information: %q vs %q", wrongPassword, noSuchUser)
	}
}

func TestCreateThenGetProject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := mustCreateUser(t, s, "alice", "alice@example.com")

	created, err := s.CreateProject(ctx, owner.ID, "Website Redesign", "refresh the landing page")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if created.Status != "Active" {
		t.Fatalf("expected default status Active, got %q", created.Status)
	}

	got, err := s.GetProject(ctx, owner.ID, created.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Name != "Website Redesign" || got.Description != "refresh the landing page" {
		t.Fatalf("unexpected project contents: %+v", got)
	}
	if got.OwnerID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, got.OwnerID)
	}

	_, err = s.CreateProject(ctx, owner.ID, "   ", "")
	if !errors.Is(err, apperr.New(apperr.CodeValidation, "")) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestProjectOwnershipScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	notFound := apperr.New(apperr.CodeNotFound, "")

	alice := mustCreateUser(t, s, "alice", "alice@example.com")
	bob := mustCreateUser(t, s, "bob", "bob@example.com")

	project, err := s.CreateProject(ctx, alice.ID, "Secret Plan", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	// Another user's project must look exactly like a missing one.
	if _, err := s.GetProject(ctx, bob.ID, project.ID); !errors.Is(err, notFound) {
		t.Fatalf("expected not found for foreign get, got %v", err)
	}
	if _, err := s.UpdateProject(ctx, bob.ID, project.ID, map[string]any{"name": "stolen"}); !errors.Is(err, notFound) {
		t.Fatalf("expected not found for foreign update, got %v", err)
	}
	if err := s.DeleteProject(ctx, bob.ID, project.ID); !errors.Is(err, notFound) {
		t.Fatalf("expected not found for foreign delete, got %v", err)
	}

	// The project is untouched and still owned by alice.
	got, err := s.GetProject(ctx, alice.ID, project.ID)
	if err != nil {
		t.Fatalf("get project as owner: %v", err)
	}
	if got.Name != "Secret Plan" {
		t.Fatalf("project was modified: %+v", got)
	}

	projects, err := s.ListProjects(ctx, bob.ID)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("expected no projects for bob, got %d", len(projects))
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := mustCreateUser(t, s, "alice", "alice@example.com")

	project, err := s.CreateProject(ctx, owner.ID, "P1", "initial description")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	updated, err := s.UpdateProject(ctx, owner.ID, project.ID, map[string]any{"status": "Completed"})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if updated.Status != "Completed" {
		t.Fatalf("expected status Completed, got %q", updated.Status)
	}
	if updated.Name != "P1" || updated.Description != "initial description" {
		t.Fatalf("unset fields were changed: %+v", updated)
	}

	validation := apperr.New(apperr.CodeValidation, "")
	if _, err := s.UpdateProject(ctx, owner.ID, project.ID, map[string]any{"status": "Abandoned"}); !errors.Is(err, validation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, err := s.UpdateProject(ctx, owner.ID, project.ID, map[string]any{"name": "  "}); !errors.Is(err, validation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := mustCreateUser(t, s, "alice", "alice@example.com")

	project, err := s.CreateProject(ctx, owner.ID, "P1", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sprint, err := s.CreateSprint(ctx, models.Sprint{
		ProjectID: project.ID,
		Name:      "Sprint 1",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
	})
	if err != nil {
		t.Fatalf("create sprint: %v", err)
	}

	if _, err := s.CreateTask(ctx, models.Task{SprintID: sprint.ID, Title: "Set up CI"}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := s.CreateTask(ctx, models.Task{SprintID: sprint.ID, Title: "Write docs"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := s.DeleteProject(ctx, owner.ID, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	if count := countRows(t, s, "sprints"); count != 0 {
		t.Fatalf("expected sprints to cascade, %d rows remain", count)
	}
	if count := countRows(t, s, "tasks"); count != 0 {
		t.Fatalf("expected tasks to cascade, %d rows remain", count)
	}

	if _, err := s.GetProject(ctx, owner.ID, project.ID); !errors.Is(err, apperr.New(apperr.CodeNotFound, "")) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func TestCreateSprintValidatesDates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := mustCreateUser(t, s, "alice", "alice@example.com")

	project, err := s.CreateProject(ctx, owner.ID, "P1", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	_, err = s.CreateSprint(ctx, models.Sprint{
		ProjectID: project.ID,
		Name:      "Backwards",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -7),
	})
	if !errors.Is(err, apperr.New(apperr.CodeValidation, "")) {
		t.Fatalf("expected validation error for start after end, got %v", err)
	}

	sprint, err := s.CreateSprint(ctx, models.Sprint{
		ProjectID: project.ID,
		Name:      "Sprint 1",
		StartDate: start,
		EndDate:   start,
	})
	if err != nil {
		t.Fatalf("single day sprint should be allowed: %v", err)
	}
	if sprint.Status != models.DefaultSprintStatus {
		t.Fatalf("expected default status %q, got %q", models.DefaultSprintStatus, sprint.Status)
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := mustCreateUser(t, s, "alice", "alice@example.com")

	project, err := s.CreateProject(ctx, owner.ID, "P1", "")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sprint, err := s.CreateSprint(ctx, models.Sprint{ProjectID: project.ID, Name: "Sprint 1", StartDate: start, EndDate: start.AddDate(0, 0, 14)})
	if err != nil {
		t.Fatalf("create sprint: %v", err)
	}

	task, err := s.CreateTask(ctx, models.Task{SprintID: sprint.ID, Title: "Review threat model", Checklist: `["input validation","authz"]`})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != models.DefaultTaskStatus {
		t.Fatalf("expected status %q, got %q", models.DefaultTaskStatus, task.Status)
	}
	if task.Priority != models.DefaultTaskPriority {
		t.Fatalf("expected priority %q, got %q", models.DefaultTaskPriority, task.Priority)
	}
	if task.StoryPoints != models.DefaultStoryPoints {
		t.Fatalf("expected %d story points, got %d", models.DefaultStoryPoints, task.StoryPoints)
	}
	if task.AssigneeID != nil {
		t.Fatalf("expected unassigned task, got assignee %d", *task.AssigneeID)
	}

	tasks, err := s.ListTasks(ctx, sprint.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Checklist == "" {
		t.Fatalf("unexpected task list: %+v", tasks)
	}
}
