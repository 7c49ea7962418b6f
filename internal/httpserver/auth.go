package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moneydream/internal/domain"
	authsvc "moneydream/internal/service/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	State string           `json:"state"`
	User  *domain.Identity `json:"user,omitempty"`
}

// loginHandler checks credentials and installs the identity in the session
// holder. The response never waits for the durable mirror.
func loginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}

		id, err := deps.AuthSvc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		deps.Sessions.Login(id)
		c.JSON(http.StatusOK, sessionResponse{State: "authenticated", User: &id})
	}
}

func logoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Sessions.Logout()
		c.Status(http.StatusNoContent)
	}
}

func sessionStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, id := deps.Sessions.Current()
		c.JSON(http.StatusOK, sessionResponse{State: string(state), User: id})
	}
}

func updateProfileHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch domain.IdentityPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
			return
		}

		merged, err := deps.Sessions.UpdateProfile(patch)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no current session"})
			return
		}
		c.JSON(http.StatusOK, sessionResponse{State: "authenticated", User: &merged})
	}
}
