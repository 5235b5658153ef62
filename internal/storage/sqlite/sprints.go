package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agileboard/internal/apperr"
	"agileboard/internal/models"
)

// Sprints and tasks have no HTTP surface; they exist as the cascade chain
// below a project and are managed through these helpers.

// CreateSprint persists a new sprint inside a project. The start date must
// not be after the end date.
func (s *Store) CreateSprint(ctx context.Context, sp models.Sprint) (models.Sprint, error) {
	if strings.TrimSpace(sp.Name) == "" {
		return models.Sprint{}, apperr.Validation("sprint name is required")
	}
	if sp.StartDate.After(sp.EndDate) {
		return models.Sprint{}, apperr.Validation("sprint start date must not be after end date")
	}
	if sp.Status == "" {
		sp.Status = models.DefaultSprintStatus
	}
	if _, valid := models.ValidSprintStatuses[sp.Status]; !valid {
		return models.Sprint{}, apperr.Validation("invalid sprint status")
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO sprints(project_id, name, start_date, end_date, status) VALUES(?, ?, ?, ?, ?)`,
		sp.ProjectID, strings.TrimSpace(sp.Name), sp.StartDate, sp.EndDate, sp.Status)
	if err != nil {
		return models.Sprint{}, fmt.Errorf("insert sprint: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Sprint{}, fmt.Errorf("sprint id: %w", err)
	}
	return s.GetSprint(ctx, id)
}

// GetSprint retrieves a sprint by id.
func (s *Store) GetSprint(ctx context.Context, id int64) (models.Sprint, error) {
	var sp models.Sprint
	err := s.db.QueryRowContext(ctx, `SELECT id, project_id, name, start_date, end_date, status FROM sprints WHERE id = ?`, id).
		Scan(&sp.ID, &sp.ProjectID, &sp.Name, &sp.StartDate, &sp.EndDate, &sp.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sprint{}, apperr.NotFound("sprint not found")
	}
	if err != nil {
		return models.Sprint{}, fmt.Errorf("get sprint: %w", err)
	}
	return sp, nil
}

// ListSprints returns the sprints of a project ordered by start date.
func (s *Store) ListSprints(ctx context.Context, projectID int64) ([]models.Sprint, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, project_id, name, start_date, end_date, status
        FROM sprints WHERE project_id = ? ORDER BY start_date ASC, id ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer rows.Close()

	var sprints []models.Sprint
	for rows.Next() {
		var sp models.Sprint
		if err := rows.Scan(&sp.ID, &sp.ProjectID, &sp.Name, &sp.StartDate, &sp.EndDate, &sp.Status); err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		sprints = append(sprints, sp)
	}
	return sprints, rows.Err()
}

// CreateTask persists a new task inside a sprint.
func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return models.Task{}, apperr.Validation("task title is required")
	}
	if t.Status == "" {
		t.Status = models.DefaultTaskStatus
	}
	if _, valid := models.ValidTaskStatuses[t.Status]; !valid {
		return models.Task{}, apperr.Validation("invalid task status")
	}
	if t.Priority == "" {
		t.Priority = models.DefaultTaskPriority
	}
	if _, valid := models.ValidTaskPriorities[t.Priority]; !valid {
		return models.Task{}, apperr.Validation("invalid task priority")
	}
	if t.StoryPoints <= 0 {
		t.StoryPoints = models.DefaultStoryPoints
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO tasks(sprint_id, assignee_id, title, description, status, priority, story_points, checklist)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		t.SprintID, t.AssigneeID, strings.TrimSpace(t.Title), t.Description, t.Status, t.Priority, t.StoryPoints, t.Checklist)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("task id: %w", err)
	}
	return s.GetTask(ctx, id)
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task
	err := s.db.QueryRowContext(ctx, `SELECT id, sprint_id, assignee_id, title, description, status, priority, story_points, checklist, created_at
        FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.SprintID, &t.AssigneeID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.StoryPoints, &t.Checklist, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, apperr.NotFound("task not found")
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListTasks returns the tasks of a sprint in insertion order.
func (s *Store) ListTasks(ctx context.Context, sprintID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, sprint_id, assignee_id, title, description, status, priority, story_points, checklist, created_at
        FROM tasks WHERE sprint_id = ? ORDER BY id ASC`, sprintID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.SprintID, &t.AssigneeID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.StoryPoints, &t.Checklist, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
