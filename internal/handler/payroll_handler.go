package handler

import (
	"net/http"

	"officebot/internal/service"
	"officebot/pkg/response"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	payrollService service.PayrollService
}

func NewPayrollHandler(payrollService service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

func (h *PayrollHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/payroll")
	{
		group.POST("/net-pay", h.CalculateNetPay)
		group.POST("/overtime", h.CalculateOvertime)
		group.POST("/bpjs", h.CalculateBPJS)
	}
}

// CalculateNetPay computes monthly take-home pay
// @Summary      Calculate net pay
// @Description  Gross plus overtime, minus the employee BPJS share and monthly PPh 21. A negative result is clamped to zero with a NEGATIVE_NET_PAY warning.
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request  body      service.NetPayRequest  true  "Salary, overtime and taxpayer profile"
// @Success      200      {object}  response.Response{data=service.NetPayResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/payroll/net-pay [post]
func (h *PayrollHandler) CalculateNetPay(c *gin.Context) {
	var req service.NetPayRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.payrollService.CalculateNetPay(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessWithWarnings(http.StatusOK, res, res.Warnings))
}

// CalculateOvertime computes overtime pay for one day
// @Summary      Calculate overtime
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request  body      service.OvertimeRequest  true  "Monthly wage and hours"
// @Success      200      {object}  response.Response{data=service.OvertimeResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/payroll/overtime [post]
func (h *PayrollHandler) CalculateOvertime(c *gin.Context) {
	var req service.OvertimeRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.payrollService.CalculateOvertime(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CalculateBPJS computes social security contributions
// @Summary      Calculate BPJS
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request  body      service.BPJSRequest  true  "Monthly wage"
// @Success      200      {object}  response.Response{data=service.BPJSResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/payroll/bpjs [post]
func (h *PayrollHandler) CalculateBPJS(c *gin.Context) {
	var req service.BPJSRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.payrollService.CalculateBPJS(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
