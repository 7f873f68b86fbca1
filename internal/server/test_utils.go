package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testCleanupRequest struct {
	Prefix string `json:"prefix"`
}

// TestCleanup wipes rows created by end-to-end runs. Registered only
// outside production.
func (s *Server) TestCleanup(c *gin.Context) {
	if s.cfg.IsProduction() {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req testCleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		AbortWithError(c, newValidationError("prefix", "required", "prefix is required"))
		return
	}

	if err := s.deleteTestData(c.Request.Context(), prefix); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) deleteTestData(ctx context.Context, prefix string) error {
	like := prefix + "%"

	var cityIDs []int64
	if err := s.db.WithContext(ctx).
		Table("cities").
		Select("id").
		Where("name LIKE ?", like).
		Scan(&cityIDs).Error; err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(cityIDs) > 0 {
			if err := tx.Exec(`DELETE FROM customers WHERE city_id IN ?`, cityIDs).Error; err != nil {
				return err
			}
			if err := tx.Exec(`DELETE FROM cities WHERE id IN ?`, cityIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec(`DELETE FROM customers WHERE name LIKE ?`, like).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM cashflow_entries WHERE notes LIKE ?`, like).Error
	})
}
