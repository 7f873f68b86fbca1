package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	revenuedomain "github.com/wisphub/netdesk/internal/revenue/domain"
)

// @Summary      Revenue Summary
// @Description  Classify customers into paid/partial/pending for a month
// @Tags         revenue
// @Produce      json
// @Security     ApiKeyAuth
// @Param        year     query  int     true   "Reporting year"
// @Param        month    query  int     true   "Reporting month (1-12)"
// @Param        city_id  query  string  false  "City filter"
// @Success      200  {object}  revenuedomain.SummaryResponse
// @Router       /revenue/summary [get]
func (s *Server) RevenueSummary(c *gin.Context) {
	year, month, err := parsePeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.revenueSvc.Summary(c.Request.Context(), revenuedomain.SummaryRequest{
		Year:   year,
		Month:  month,
		CityID: strings.TrimSpace(c.Query("city_id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary      Yearly Tracking Grid
// @Description  Month-by-month payment grid for every customer in a year
// @Tags         revenue
// @Produce      json
// @Security     ApiKeyAuth
// @Param        year     query  int     true   "Year"
// @Param        city_id  query  string  false  "City filter"
// @Success      200  {object}  revenuedomain.YearlyGridResponse
// @Router       /revenue/grid [get]
func (s *Server) RevenueYearlyGrid(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		AbortWithError(c, newValidationError("year", "invalid_year", "invalid year"))
		return
	}

	resp, err := s.revenueSvc.YearlyGrid(c.Request.Context(), year, strings.TrimSpace(c.Query("city_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func parsePeriod(c *gin.Context) (int, time.Month, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		return 0, 0, newValidationError("year", "invalid_year", "invalid year")
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, newValidationError("month", "invalid_month", "invalid month")
	}
	return year, time.Month(month), nil
}
