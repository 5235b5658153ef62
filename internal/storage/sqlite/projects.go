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

// Every query in this file is keyed by (id, owner_id). A project owned by
// someone else produces the same not-found error as a nonexistent id, so
// ownership mismatches never leak existence.

// ListProjects retrieves all projects owned by the user, oldest first.
func (s *Store) ListProjects(ctx context.Context, ownerID int64) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, owner_id, status, created_at
        FROM projects WHERE owner_id = ? ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateProject persists a new project owned by the user with Active status.
func (s *Store) CreateProject(ctx context.Context, ownerID int64, name, description string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, apperr.Validation("project name is required")
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO projects(name, description, owner_id, status) VALUES(?, ?, ?, ?)`,
		name, description, ownerID, models.DefaultProjectStatus)
	if err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Project{}, fmt.Errorf("project id: %w", err)
	}
	return s.GetProject(ctx, ownerID, id)
}

// GetProject fetches a single project owned by the user.
func (s *Store) GetProject(ctx context.Context, ownerID, id int64) (models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx, `SELECT id, name, description, owner_id, status, created_at
        FROM projects WHERE id = ? AND owner_id = ?`, id, ownerID).
		Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, apperr.NotFound("project not found")
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// UpdateProject overwrites the supplied fields and keeps the rest. Absent
// keys are no-ops, not clears.
func (s *Store) UpdateProject(ctx context.Context, ownerID, id int64, changes map[string]any) (models.Project, error) {
	current, err := s.GetProject(ctx, ownerID, id)
	if err != nil {
		return models.Project{}, err
	}

	name := current.Name
	description := current.Description
	status := current.Status

	if v, ok := changes["name"].(string); ok {
		if strings.TrimSpace(v) == "" {
			return models.Project{}, apperr.Validation("project name must not be empty")
		}
		name = strings.TrimSpace(v)
	}
	if v, ok := changes["description"].(string); ok {
		description = v
	}
	if v, ok := changes["status"].(string); ok {
		if _, valid := models.ValidProjectStatuses[v]; !valid {
			return models.Project{}, apperr.Validation("invalid project status")
		}
		status = v
	}

	_, err = s.db.ExecContext(ctx, `UPDATE projects SET name = ?, description = ?, status = ? WHERE id = ? AND owner_id = ?`,
		name, description, status, id, ownerID)
	if err != nil {
		return models.Project{}, fmt.Errorf("update project: %w", err)
	}
	return s.GetProject(ctx, ownerID, id)
}

// DeleteProject removes a project owned by the user along with its sprints
// and their tasks.
func (s *Store) DeleteProject(ctx context.Context, ownerID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("project not found")
	}
	return nil
}
