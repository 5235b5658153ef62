package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agileboard/internal/apperr"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// handleRegister creates a new account and returns an access token so the
// client is logged in immediately.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.Wrap(apperr.CodeValidation, "invalid request body", err))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		s.respondError(c, apperr.Validation("username, email and password are required"))
		return
	}

	user, err := s.store.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{
		"message":      "user registered",
		"access_token": token,
	})
}

// handleLogin verifies credentials and returns a fresh access token.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, apperr.Wrap(apperr.CodeValidation, "invalid request body", err))
		return
	}
	if req.UsernameOrEmail == "" || req.Password == "" {
		s.respondError(c, apperr.Validation("username_or_email and password are required"))
		return
	}

	user, err := s.store.AuthenticateUser(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"message":      "login successful",
		"access_token": token,
	})
}

// handleProfile returns the authenticated user's account details.
func (s *Server) handleProfile(c *gin.Context) {
	user, err := s.store.UserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	})
}
