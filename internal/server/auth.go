package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Login
// @Description  Authenticate an operator and issue a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login Request"
// @Success      200  {object}  authdomain.LoginResponse
// @Router       /auth/login [post]
func (s *Server) Login(c *gin.Context) {
	if !s.loginLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type confirmPasswordRequest struct {
	Password string `json:"password"`
}

// ConfirmPassword re-checks the logged-in operator's password. The dashboard
// calls this before destructive actions.
func (s *Server) ConfirmPassword(c *gin.Context) {
	var req confirmPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.authSvc.ConfirmPassword(c.Request.Context(), currentUserID(c), req.Password); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
