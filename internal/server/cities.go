package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
)

type createCityRequest struct {
	Name string `json:"name"`
}

// @Summary      Create City
// @Description  Create a new service city
// @Tags         cities
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createCityRequest true "Create City Request"
// @Success      200  {object}  citydomain.City
// @Router       /cities [post]
func (s *Server) CreateCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.citySvc.Create(c.Request.Context(), citydomain.CreateCityRequest{Name: req.Name})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Cities
// @Tags         cities
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  []citydomain.City
// @Router       /cities [get]
func (s *Server) ListCities(c *gin.Context) {
	resp, err := s.citySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCity(c *gin.Context) {
	resp, err := s.citySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RenameCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.citySvc.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete City
// @Description  Delete a city and every customer assigned to it
// @Tags         cities
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "City ID"
// @Success      200  {object}  map[string]string
// @Router       /cities/{id} [delete]
func (s *Server) DeleteCity(c *gin.Context) {
	id := c.Param("id")
	if err := s.citySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "city.delete", "city", &id, map[string]any{
			"cascade": "customers",
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
