package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	auditdomain "github.com/wisphub/netdesk/internal/audit/domain"
)

func (s *Server) ListAuditLog(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid limit"))
			return
		}
		limit = parsed
	}

	entries, err := s.auditSvc.List(c.Request.Context(), auditdomain.ListFilter{
		Action:     c.Query("action"),
		TargetType: c.Query("target_type"),
		TargetID:   c.Query("target_id"),
		Limit:      limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
