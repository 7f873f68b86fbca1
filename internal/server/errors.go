package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	invoicedomain "github.com/wisphub/netdesk/internal/invoice/domain"
	revenuedomain "github.com/wisphub/netdesk/internal/revenue/domain"
	routerdomain "github.com/wisphub/netdesk/internal/routerproxy/domain"
	"go.uber.org/zap"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

var (
	ErrNotFound           = &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
	ErrUnauthorized       = &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "authentication required"}
	ErrTooManyRequests    = &apiError{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "too many requests"}
	ErrServiceUnavailable = &apiError{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "service unavailable"}
)

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "malformed request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

type errorStatus struct {
	err    error
	status int
}

// statusByError maps domain sentinels onto HTTP statuses. Anything unmapped
// is a 500. Matching walks the slice in order, so precedence stays fixed
// even if a wrapped error ever satisfies more than one sentinel.
var statusByError = []errorStatus{
	{citydomain.ErrInvalidCityID, http.StatusBadRequest},
	{citydomain.ErrCityNameMissing, http.StatusBadRequest},
	{citydomain.ErrCityNameTaken, http.StatusConflict},
	{citydomain.ErrCityNotFound, http.StatusNotFound},

	{customerdomain.ErrInvalidCustomerID, http.StatusBadRequest},
	{customerdomain.ErrCustomerNameMissing, http.StatusBadRequest},
	{customerdomain.ErrInvalidCity, http.StatusBadRequest},
	{customerdomain.ErrNegativeAmount, http.StatusBadRequest},
	{customerdomain.ErrInvalidMonthKey, http.StatusBadRequest},
	{customerdomain.ErrInvalidStatus, http.StatusBadRequest},
	{customerdomain.ErrNoDiscount, http.StatusConflict},
	{customerdomain.ErrInvalidPageToken, http.StatusBadRequest},
	{customerdomain.ErrCustomerNotFound, http.StatusNotFound},
	{customerdomain.ErrCityNotFound, http.StatusNotFound},

	{cashflowdomain.ErrInvalidEntryID, http.StatusBadRequest},
	{cashflowdomain.ErrInvalidKind, http.StatusBadRequest},
	{cashflowdomain.ErrLabelMissing, http.StatusBadRequest},
	{cashflowdomain.ErrNegativeAmount, http.StatusBadRequest},
	{cashflowdomain.ErrInvalidPeriod, http.StatusBadRequest},
	{cashflowdomain.ErrMissingOccurred, http.StatusBadRequest},
	{cashflowdomain.ErrEntryNotFound, http.StatusNotFound},

	{revenuedomain.ErrInvalidPeriod, http.StatusBadRequest},
	{revenuedomain.ErrInvalidCity, http.StatusBadRequest},

	{invoicedomain.ErrInvalidCustomerID, http.StatusBadRequest},
	{invoicedomain.ErrInvalidPeriod, http.StatusBadRequest},
	{invoicedomain.ErrCustomerNotFound, http.StatusNotFound},

	{authdomain.ErrInvalidCredentials, http.StatusUnauthorized},
	{authdomain.ErrInvalidToken, http.StatusUnauthorized},
	{authdomain.ErrUserNotFound, http.StatusNotFound},

	{routerdomain.ErrMissingCredentials, http.StatusBadRequest},
	{routerdomain.ErrSecretNameMissing, http.StatusBadRequest},
	{routerdomain.ErrSecretNotFound, http.StatusNotFound},
	{routerdomain.ErrSessionNotFound, http.StatusNotFound},
	{routerdomain.ErrRouterUnreachable, http.StatusBadGateway},
}

// AbortWithError terminates the request with the JSON error envelope.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	for _, mapping := range statusByError {
		if errors.Is(err, mapping.err) {
			c.AbortWithStatusJSON(mapping.status, gin.H{"error": &apiError{
				Status:  mapping.status,
				Code:    mapping.err.Error(),
				Message: mapping.err.Error(),
			}})
			return
		}
	}

	zap.L().Error("unhandled request error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": &apiError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "internal error",
	}})
}
