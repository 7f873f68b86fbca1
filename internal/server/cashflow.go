package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
)

type createCashflowEntryRequest struct {
	Kind       string `json:"kind"`
	Label      string `json:"label"`
	Amount     int64  `json:"amount"`
	OccurredAt string `json:"occurred_at"`
	Notes      string `json:"notes"`
}

func (s *Server) CreateCashflowEntry(c *gin.Context) {
	var req createCashflowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	occurredAt, err := parseOptionalDate(req.OccurredAt)
	if err != nil || occurredAt == nil {
		AbortWithError(c, newValidationError("occurred_at", "invalid_occurred_at", "invalid occurred_at"))
		return
	}

	resp, err := s.cashflowSvc.Create(c.Request.Context(), cashflowdomain.CreateEntryRequest{
		Kind:       cashflowdomain.EntryKind(strings.TrimSpace(req.Kind)),
		Label:      req.Label,
		Amount:     req.Amount,
		OccurredAt: *occurredAt,
		Notes:      req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCashflowEntries(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	var month time.Month
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			AbortWithError(c, newValidationError("month", "invalid_month", "invalid month"))
			return
		}
		month = time.Month(parsed)
	}

	resp, err := s.cashflowSvc.List(c.Request.Context(), cashflowdomain.ListEntriesRequest{
		Year:  year,
		Month: month,
		Kind:  cashflowdomain.EntryKind(strings.TrimSpace(c.Query("kind"))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCashflowEntry(c *gin.Context) {
	id := c.Param("id")
	if err := s.cashflowSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "cashflow.delete", "cashflow_entry", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
