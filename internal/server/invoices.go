package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/wisphub/netdesk/internal/invoice/domain"
)

// @Summary      Generate Invoice
// @Description  Render the HTML invoice for one customer and month
// @Tags         invoices
// @Produce      html
// @Security     ApiKeyAuth
// @Param        id     path   string  true  "Customer ID"
// @Param        year   query  int     true  "Year"
// @Param        month  query  int     true  "Month (1-12)"
// @Success      200  {string}  string
// @Router       /customers/{id}/invoice [get]
func (s *Server) GenerateInvoice(c *gin.Context) {
	year, month, err := parsePeriod(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	invoice, err := s.invoiceSvc.Generate(c.Request.Context(), invoicedomain.GenerateInvoiceRequest{
		CustomerID: c.Param("id"),
		Year:       year,
		Month:      month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, gin.H{"data": invoice})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(invoice.HTML))
}
