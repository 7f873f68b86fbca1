package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	"github.com/wisphub/netdesk/internal/receivable"
	"github.com/wisphub/netdesk/pkg/db/pagination"
)

type createCustomerRequest struct {
	CityID            string `json:"city_id"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Address           string `json:"address"`
	SubscriptionValue int64  `json:"subscription_value"`
	StartDate         string `json:"start_date"`
	SetupFeeTotal     int64  `json:"setup_fee_total"`
}

// @Summary      Create Customer
// @Description  Create a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body createCustomerRequest true "Create Customer Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		CityID:            strings.TrimSpace(req.CityID),
		Name:              strings.TrimSpace(req.Name),
		Phone:             strings.TrimSpace(req.Phone),
		Address:           strings.TrimSpace(req.Address),
		SubscriptionValue: req.SubscriptionValue,
		StartDate:         startDate,
		SetupFeeTotal:     req.SetupFeeTotal,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Customers
// @Description  List customers, optionally filtered by city, name, suspension
// @Tags         customers
// @Produce      json
// @Security     ApiKeyAuth
// @Param        city_id    query  string  false  "City ID"
// @Param        name       query  string  false  "Name"
// @Param        suspended  query  bool    false  "Suspended"
// @Success      200  {object}  []customerdomain.Customer
// @Router       /customers [get]
func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		CityID    string `form:"city_id"`
		Name      string `form:"name"`
		Suspended *bool  `form:"suspended"`
		pagination.Pagination
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, pageInfo, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		CityID:    query.CityID,
		Name:      query.Name,
		Suspended: query.Suspended,
		Page:      query.Pagination,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp, "page_info": pageInfo})
}

func (s *Server) GetCustomer(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCustomerRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	SubscriptionValue *int64  `json:"subscription_value"`
	StartDate         *string `json:"start_date"`
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := customerdomain.UpdateCustomerRequest{
		Name:              req.Name,
		Phone:             req.Phone,
		Address:           req.Address,
		SubscriptionValue: req.SubscriptionValue,
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalDate(*req.StartDate)
		if err != nil {
			AbortWithError(c, newValidationError("start_date", "invalid_start_date", "invalid start_date"))
			return
		}
		update.StartDate = startDate
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "customer.delete", "customer", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type transferCustomerRequest struct {
	CityID string `json:"city_id"`
}

func (s *Server) TransferCustomer(c *gin.Context) {
	var req transferCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := c.Param("id")
	resp, err := s.customerSvc.Transfer(c.Request.Context(), id, strings.TrimSpace(req.CityID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "customer.transfer", "customer", &id, map[string]any{
			"city_id": req.CityID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setMonthlyStatusRequest struct {
	YearMonth string `json:"year_month"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
}

// @Summary      Set Monthly Payment Status
// @Description  Toggle one month's payment status for a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id       path  string                   true  "Customer ID"
// @Param        request  body  setMonthlyStatusRequest  true  "Payment Status"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers/{id}/payments [post]
func (s *Server) SetMonthlyStatus(c *gin.Context) {
	var req setMonthlyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.SetMonthlyStatus(c.Request.Context(), c.Param("id"), customerdomain.SetMonthlyStatusRequest{
		YearMonth: req.YearMonth,
		Status:    receivable.Status(strings.TrimSpace(req.Status)),
		Amount:    req.Amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type discountRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) ApplyDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	id := c.Param("id")
	resp, err := s.customerSvc.ApplyDiscount(c.Request.Context(), id, req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "customer.discount.apply", "customer", &id, map[string]any{
			"amount": req.Amount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) RemoveDiscount(c *gin.Context) {
	id := c.Param("id")
	resp, err := s.customerSvc.RemoveDiscount(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "customer.discount.remove", "customer", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) SuspendCustomer(c *gin.Context) {
	id := c.Param("id")
	resp, err := s.customerSvc.Suspend(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "customer.suspend", "customer", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ResumeCustomer(c *gin.Context) {
	id := c.Param("id")
	resp, err := s.customerSvc.Resume(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.auditSvc != nil {
		_ = s.auditSvc.AuditLog(c.Request.Context(), currentUserID(c), "customer.resume", "customer", &id, nil)
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setupFeePaymentRequest struct {
	Amount int64 `json:"amount"`
}

func (s *Server) RecordSetupFeePayment(c *gin.Context) {
	var req setupFeePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.RecordSetupFeePayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
