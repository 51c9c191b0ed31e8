package handler

import (
	"net/http"

	"officebot/internal/service"
	"officebot/pkg/response"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	financeService service.FinanceService
}

func NewFinanceHandler(financeService service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

func (h *FinanceHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/finance")
	{
		group.POST("/bep", h.BreakEven)
		group.POST("/roi", h.ROI)
		group.POST("/depreciation", h.Depreciation)
		group.POST("/ratios", h.Ratios)
		group.POST("/income-statement", h.IncomeStatement)
		group.POST("/balance-sheet", h.BalanceSheet)
		group.POST("/cash-flow", h.CashFlow)
	}
}

// BreakEven
// @Summary      Break-even point
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.BreakEvenRequest  true  "Fixed costs, price and variable cost per unit"
// @Success      200      {object}  response.Response{data=service.BreakEvenResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/bep [post]
func (h *FinanceHandler) BreakEven(c *gin.Context) {
	var req service.BreakEvenRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.BreakEven(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ROI
// @Summary      Return on investment
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.ROIRequest  true  "Gain and cost; revenue adds the profit margin"
// @Success      200      {object}  response.Response{data=service.ROIResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/roi [post]
func (h *FinanceHandler) ROI(c *gin.Context) {
	var req service.ROIRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.ROI(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Depreciation
// @Summary      Depreciation schedule
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.DepreciationRequest  true  "Asset cost, salvage, useful life and method"
// @Success      200      {object}  response.Response{data=service.DepreciationResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/depreciation [post]
func (h *FinanceHandler) Depreciation(c *gin.Context) {
	var req service.DepreciationRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.Depreciation(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Ratios
// @Summary      Financial ratios
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.RatiosRequest  true  "Any of liquidity, solvency, profitability"
// @Success      200      {object}  response.Response{data=service.RatiosResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/ratios [post]
func (h *FinanceHandler) Ratios(c *gin.Context) {
	var req service.RatiosRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.Ratios(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// IncomeStatement
// @Summary      Income statement summary
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.IncomeStatementRequest  true  "Revenue, costs and expenses"
// @Success      200      {object}  response.Response{data=service.IncomeStatementResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/income-statement [post]
func (h *FinanceHandler) IncomeStatement(c *gin.Context) {
	var req service.IncomeStatementRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.IncomeStatement(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// BalanceSheet
// @Summary      Balance sheet summary
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.BalanceSheetRequest  true  "Assets, liabilities and equity by account"
// @Success      200      {object}  response.Response{data=service.BalanceSheetResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/balance-sheet [post]
func (h *FinanceHandler) BalanceSheet(c *gin.Context) {
	var req service.BalanceSheetRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.BalanceSheet(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CashFlow
// @Summary      Cash flow statement
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request  body      service.CashFlowRequest  true  "Signed operating, investing and financing movements"
// @Success      200      {object}  response.Response{data=service.CashFlowResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/finance/cash-flow [post]
func (h *FinanceHandler) CashFlow(c *gin.Context) {
	var req service.CashFlowRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.financeService.CashFlow(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
