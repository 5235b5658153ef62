package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agileboard/internal/apperr"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// updateProjectRequest uses pointers so omitted fields stay untouched.
type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// handleListProjects returns all projects owned by the caller.
func (s *Server) handleListProjects(c *gin.Context) {
	userID := currentUserID(c)
	if _, err := s.store.UserByID(c.Request.Context(), userID); err != nil {
		s.respondError(c, err)
		return
	}

	projects, err := s.store.ListProjects(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"projects": projects})
}

// handleCreateProject creates a project owned by the caller.
func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.Wrap(apperr.CodeValidation, "invalid request body", err))
		return
	}

	project, err := s.store.CreateProject(c.Request.Context(), currentUserID(c), req.Name, req.Description)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleGetProject fetches one project; a project owned by someone else is
// reported exactly like a missing one.
func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	project, err := s.store.GetProject(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleUpdateProject applies a partial update to an owned project.
func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.Wrap(apperr.CodeValidation, "invalid request body", err))
		return
	}

	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.Status != nil {
		changes["status"] = *req.Status
	}

	project, err := s.store.UpdateProject(c.Request.Context(), currentUserID(c), id, changes)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes an owned project along with its sprints and
// tasks.
func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := s.store.DeleteProject(c.Request.Context(), currentUserID(c), id); err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"message": "project deleted"})
}
