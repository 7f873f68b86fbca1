package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	routerdomain "github.com/wisphub/netdesk/internal/routerproxy/domain"
)

// routerCredentials is embedded in every proxy request body; the dashboard
// holds device credentials client-side and never stores them here.
type routerCredentials struct {
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r routerCredentials) domain() routerdomain.Credentials {
	return routerdomain.Credentials{
		Address:  strings.TrimSpace(r.Address),
		Username: strings.TrimSpace(r.Username),
		Password: r.Password,
	}
}

func (s *Server) RouterPing(c *gin.Context) {
	var req routerCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.routerSvc.Ping(c.Request.Context(), req.domain()); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RouterListSecrets(c *gin.Context) {
	var req routerCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	secrets, err := s.routerSvc.ListSecrets(c.Request.Context(), req.domain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": secrets})
}

type addSecretRequest struct {
	routerCredentials
	Name          string `json:"name"`
	SecretPass    string `json:"secret_password"`
	Profile       string `json:"profile"`
	SecretService string `json:"service"`
	Comment       string `json:"comment"`
}

func (s *Server) RouterAddSecret(c *gin.Context) {
	var req addSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err := s.routerSvc.AddSecret(c.Request.Context(), req.domain(), routerdomain.AddSecretRequest{
		Name:     req.Name,
		Password: req.SecretPass,
		Profile:  req.Profile,
		Service:  req.SecretService,
		Comment:  req.Comment,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		name := req.Name
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "router.secret.add", "router_secret", &name, map[string]any{
			"device": req.Address,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type secretNameRequest struct {
	routerCredentials
	Name string `json:"name"`
}

func (s *Server) RouterRemoveSecret(c *gin.Context) {
	var req secretNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.routerSvc.RemoveSecret(c.Request.Context(), req.domain(), req.Name); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		name := req.Name
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "router.secret.remove", "router_secret", &name, map[string]any{
			"device": req.Address,
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type toggleSecretRequest struct {
	routerCredentials
	Name     string `json:"name"`
	Disabled bool   `json:"disabled"`
}

func (s *Server) RouterToggleSecret(c *gin.Context) {
	var req toggleSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.routerSvc.SetSecretDisabled(c.Request.Context(), req.domain(), req.Name, req.Disabled); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RouterDisconnect(c *gin.Context) {
	var req secretNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.routerSvc.DisconnectActive(c.Request.Context(), req.domain(), req.Name); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RouterListProfiles(c *gin.Context) {
	var req routerCredentials
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	profiles, err := s.routerSvc.ListProfiles(c.Request.Context(), req.domain())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profiles})
}
