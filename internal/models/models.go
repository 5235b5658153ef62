package models

import "time"

// User is an account that owns projects. The password hash never leaves the
// process; only the register and login endpoints ever see the plaintext.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Project is owned by exactly one user and is only visible through that
// owner's identity.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sprint is a time-boxed iteration inside a project.
type Sprint struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

// Task is a single unit of work inside a sprint, optionally assigned to a
// user. Checklist is an opaque payload stored as text.
type Task struct {
	ID          int64     `json:"id"`
	SprintID    int64     `json:"sprint_id"`
	AssigneeID  *int64    `json:"assignee_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	StoryPoints int64     `json:"story_points"`
	Checklist   string    `json:"checklist,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Defaults applied when a field is omitted on creation.
const (
	DefaultRole          = "Viewer"
	DefaultProjectStatus = "Active"
	DefaultSprintStatus  = "Planned"
	DefaultTaskStatus    = "To Do"
	DefaultTaskPriority  = "Medium"
	DefaultStoryPoints   = 1
)

// ValidProjectStatuses enumerates the statuses a project may carry.
var ValidProjectStatuses = map[string]struct{}{
	"Active":    {},
	"Completed": {},
	"On Hold":   {},
}

// ValidSprintStatuses enumerates the statuses a sprint may carry.
var ValidSprintStatuses = map[string]struct{}{
	"Planned":   {},
	"Active":    {},
	"Completed": {},
}

// ValidTaskStatuses enumerates the board columns a task may sit in.
var ValidTaskStatuses = map[string]struct{}{
	"To Do":       {},
	"In Progress": {},
	"Done":        {},
}

// ValidTaskPriorities enumerates the supported task priorities.
var ValidTaskPriorities = map[string]struct{}{
	"Low":    {},
	"Medium": {},
	"High":   {},
}
