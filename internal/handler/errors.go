package handler

import (
	"errors"
	"net/http"

	"officebot/internal/finance"
	"officebot/internal/payroll"
	"officebot/internal/service"
	"officebot/internal/taxconfig"
	"officebot/internal/taxengine"
	"officebot/pkg/formatter"
	"officebot/pkg/money"
	"officebot/pkg/response"

	"github.com/gin-gonic/gin"
)

// domainErrors are caller mistakes the request was well-formed enough to reach.
var domainErrors = []error{
	taxconfig.ErrInvalidBracketConfig,
	taxconfig.ErrInvalidProfile,
	taxengine.ErrUnknownServiceCategory,
	taxengine.ErrNegativeAmount,
	taxengine.ErrInvalidPeriod,
	taxengine.ErrInvalidRate,
	payroll.ErrNegativeHours,
	payroll.ErrInvalidMultiplier,
	finance.ErrInvalidMargin,
	finance.ErrDivisionByZero,
	finance.ErrInvalidUsefulLife,
	finance.ErrInvalidRate,
	finance.ErrInvalidSalvage,
	finance.ErrNegativeAmount,
	formatter.ErrInvalidAmount,
	money.ErrAmountTooLarge,
	service.ErrInvalidInput,
}

func statusFor(err error) int {
	if errors.Is(err, taxconfig.ErrUnknownTaxYear) {
		return http.StatusNotFound
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, response.Error(status, "internal error"))
		return
	}
	c.JSON(status, response.Error(status, err.Error()))
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return false
	}
	return true
}
